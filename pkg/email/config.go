package email

// Config holds email sink configuration.
// Postmark tokens may be empty: the service then falls back to the dev sender.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL" envDefault:"alerts@restock.local"`
	SupportEmail         string `env:"SUPPORT_EMAIL" envDefault:"support@restock.local"`
	DevDir               string `env:"DEV_DIR" envDefault:"./tmp/emails"`
}

// UsePostmark reports whether Postmark credentials are configured.
func (c Config) UsePostmark() bool {
	return c.PostmarkServerToken != "" && c.PostmarkAccountToken != ""
}
