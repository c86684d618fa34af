package notifier

// Classify derives the channel state from the observed messages
// (newest-first) and the bot's own user id. It is total: every possible
// observation maps to exactly one state.
func Classify(msgs []Message, botID string) State {
	if len(msgs) != 1 && len(msgs) != 2 {
		return StateUninitialized
	}
	for _, m := range msgs {
		if m.AuthorID != botID {
			return StateUninitialized
		}
	}
	if len(msgs) == 1 {
		return StateNonNotified
	}
	// msgs[0] = notify, msgs[1] = info (newest-first).
	return StateNotified
}
