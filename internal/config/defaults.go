package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Site.URL == "" {
		cfg.Site.URL = "https://insightexus.com"
	}
	if cfg.Site.Name == "" {
		cfg.Site.Name = "InsightExus"
	}
	if cfg.Content.Directory == "" {
		cfg.Content.Directory = "./content"
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = "./data/inquiries.db"
	}
	if cfg.Search.DefaultLimit == 0 {
		cfg.Search.DefaultLimit = 10
	}
	if cfg.Search.MaxLimit == 0 {
		cfg.Search.MaxLimit = 50
	}
	if cfg.Search.TitleBoost == 0 {
		cfg.Search.TitleBoost = 3.0
	}
	if cfg.Search.MaxSuggestions == 0 {
		cfg.Search.MaxSuggestions = 3
	}
	if cfg.Mail.Port == 0 {
		cfg.Mail.Port = 587
	}
	if cfg.Mail.Admin == "" {
		cfg.Mail.Admin = "admin@insightexus.com"
	}
	if cfg.Mail.From == "" {
		cfg.Mail.From = cfg.Mail.Admin
	}
	if cfg.Contact.RatePerMinute == 0 {
		cfg.Contact.RatePerMinute = 5
	}
	if cfg.Contact.Burst == 0 {
		cfg.Contact.Burst = 3
	}
	if cfg.Contact.MaxAttachmentBytes == 0 {
		cfg.Contact.MaxAttachmentBytes = 10 << 20
	}
	if cfg.Contact.AttachmentPreviewChars == 0 {
		cfg.Contact.AttachmentPreviewChars = 500
	}
}
