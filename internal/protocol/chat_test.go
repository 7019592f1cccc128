package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"ascii", "hello world"},
		{"empty", ""},
		{"cjk", "歡迎來到伺服器"},
		{"astral", "gg 𝕘𝕘"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := roundTrip(t, &ChatMessageFromClient{Text: tt.text}).(*ChatMessageFromClient)
			assert.Equal(t, tt.text, got.Text)

			srv := roundTrip(t, &ChatMessageFromServer{Source: 5, Text: tt.text}).(*ChatMessageFromServer)
			assert.Equal(t, CreatureID(5), srv.Source)
			assert.Equal(t, tt.text, srv.Text)
		})
	}
}

func TestChatServerNotice(t *testing.T) {
	got := roundTrip(t, &ChatMessageFromServer{Source: 0, Text: "[+] alice"}).(*ChatMessageFromServer)
	require.Equal(t, CreatureID(0), got.Source)
	assert.Equal(t, "[+] alice", got.Text)
}
