package alerts

// Channel names reported by the subscriber variants.
const (
	ChannelEmail  = "email"
	ChannelSMS    = "sms"
	ChannelFeed   = "feed"
	ChannelStream = "stream"
)
