package discord

import (
	"testing"

	"hhnotifier/internal/logx"
	"hhnotifier/internal/notifier"
)

func TestSnowflakeLess(t *testing.T) {
	t.Parallel()
	tests := []struct {
		a, b string
		want bool
	}{
		{"999", "1000", true},
		{"1000", "999", false},
		{"1111", "1112", true},
		{"1112", "1111", false},
		{"5", "5", false},
		{"123456789012345678", "123456789012345679", true},
	}
	for _, tt := range tests {
		if got := snowflakeLess(tt.a, tt.b); got != tt.want {
			t.Errorf("snowflakeLess(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestNewRequiresToken(t *testing.T) {
	t.Parallel()
	if _, err := New(Config{}, logx.Nop()); err == nil {
		t.Fatal("New with empty token succeeded, want error")
	}
}

func TestAllowedMentions(t *testing.T) {
	t.Parallel()
	g := &channelGateway{roleID: "42"}

	none := g.allowedMentions(notifier.MentionNone)
	if len(none.Parse) != 0 || len(none.Roles) != 0 || len(none.Users) != 0 {
		t.Fatalf("MentionNone must suppress everything: %+v", none)
	}

	role := g.allowedMentions(notifier.MentionRole)
	if len(role.Roles) != 1 || role.Roles[0] != "42" {
		t.Fatalf("MentionRole must allow exactly the configured role: %+v", role)
	}
}
