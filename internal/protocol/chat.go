package protocol

import (
	"fmt"
	"io"

	"golang.org/x/text/encoding/unicode"
)

var (
	utf16Enc = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder()
	utf16Dec = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
)

// chat strings travel as a u32 UTF-16 code unit count followed by the
// UTF-16LE payload.
func writeChatString(w *Writer, s string) {
	encoded, err := utf16Enc.Bytes([]byte(s))
	if err != nil {
		// Replace unencodable input rather than corrupting the frame.
		encoded = nil
	}
	w.WriteD(int32(len(encoded) / 2))
	w.WriteBytes(encoded)
}

// maxChatUnits bounds hostile chat length prefixes.
const maxChatUnits = 1 << 16

func readChatString(rd io.Reader) (string, error) {
	var lb [4]byte
	if _, err := io.ReadFull(rd, lb[:]); err != nil {
		return "", err
	}
	units := int32(uint32(lb[0]) | uint32(lb[1])<<8 | uint32(lb[2])<<16 | uint32(lb[3])<<24)
	if units < 0 || units > maxChatUnits {
		return "", fmt.Errorf("chat length %d out of range", units)
	}
	raw := make([]byte, units*2)
	if _, err := io.ReadFull(rd, raw); err != nil {
		return "", err
	}
	decoded, err := utf16Dec.Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidString, err)
	}
	return string(decoded), nil
}

// ChatMessageFromClient is a chat line typed by a player.
type ChatMessageFromClient struct {
	Text string
}

func (p *ChatMessageFromClient) PacketID() Id { return IdChatMessageFromClient }

func (p *ChatMessageFromClient) writeBody(w *Writer) {
	writeChatString(w, p.Text)
}

func readChatFromClient(rd io.Reader) (*ChatMessageFromClient, error) {
	text, err := readChatString(rd)
	if err != nil {
		return nil, err
	}
	return &ChatMessageFromClient{Text: text}, nil
}

// ChatMessageFromServer is a chat line attributed to a creature.
// Source 0 renders as a server notice.
type ChatMessageFromServer struct {
	Source CreatureID
	Text   string
}

func (p *ChatMessageFromServer) PacketID() Id { return IdChatMessageFromServer }

func (p *ChatMessageFromServer) writeBody(w *Writer) {
	w.WriteQ(int64(p.Source))
	writeChatString(w, p.Text)
}

func readChatFromServer(rd io.Reader) (*ChatMessageFromServer, error) {
	var sb [8]byte
	if _, err := io.ReadFull(rd, sb[:]); err != nil {
		return nil, err
	}
	r := NewReader(sb[:])
	source := CreatureID(r.ReadQ())
	text, err := readChatString(rd)
	if err != nil {
		return nil, err
	}
	return &ChatMessageFromServer{Source: source, Text: text}, nil
}
