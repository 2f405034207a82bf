package telegram

import "videobot/internal/platform/config"

// Options tunes the bot transport
type Options struct {
	Token string
	// PollTimeout is the long polling timeout in seconds
	PollTimeout int
	// RatePerMinute and Burst bound questions per chat
	RatePerMinute int
	Burst         int
	// Debug turns on the client library's request logging
	Debug bool
}

// FromConfig reads CORE_BOT_*; the token falls back to the bare BOT_TOKEN
func FromConfig(root config.Conf) Options {
	c := root.Prefix("CORE_BOT_")
	token := c.MayString("TOKEN", "")
	if token == "" {
		token = root.MustString("BOT_TOKEN")
	}
	return Options{
		Token:         token,
		PollTimeout:   c.MayInt("POLL_TIMEOUT", 60),
		RatePerMinute: c.MayInt("RATE_PER_MINUTE", 20),
		Burst:         c.MayInt("BURST", 5),
		Debug:         c.MayBool("DEBUG", false),
	}
}
