package notifier

import "testing"

const botID = "bot-1"

func bot(id string) Message     { return Message{ID: id, AuthorID: botID} }
func foreign(id string) Message { return Message{ID: id, AuthorID: "user-7"} }

func TestClassify(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		msgs []Message
		want State
	}{
		{name: "empty channel", msgs: nil, want: StateUninitialized},
		{name: "single bot message", msgs: []Message{bot("a")}, want: StateNonNotified},
		{name: "two bot messages", msgs: []Message{bot("a"), bot("b")}, want: StateNotified},
		{name: "single foreign message", msgs: []Message{foreign("x")}, want: StateUninitialized},
		{name: "foreign newest of two", msgs: []Message{foreign("x"), bot("a")}, want: StateUninitialized},
		{name: "foreign oldest of two", msgs: []Message{bot("a"), foreign("x")}, want: StateUninitialized},
		{name: "three bot messages", msgs: []Message{bot("a"), bot("b"), bot("c")}, want: StateUninitialized},
		{name: "busy channel", msgs: []Message{bot("a"), foreign("x"), bot("b"), foreign("y")}, want: StateUninitialized},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Classify(tt.msgs, botID); got != tt.want {
				t.Fatalf("Classify(%d msgs) = %v, want %v", len(tt.msgs), got, tt.want)
			}
		})
	}
}
