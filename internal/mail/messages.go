package mail

// Message is a localized subject/body pair.
type Message struct {
	Subject string
	Body    string
}

// skipVersionMessages holds the skip-version alert per language tag.
var skipVersionMessages = map[string]Message{
	"en": {
		Subject: "Chronicle upgrade needs your attention",
		Body: "<p>This installation skipped at least one release, so it cannot be " +
			"upgraded automatically.</p>" +
			"<p>Please upgrade release by release, or migrate the data by hand " +
			"before running this version again.</p>",
	},
	"zh": {
		Subject: "Chronicle 升级需要您的关注",
		Body: "<p>当前安装跳过了至少一个版本，无法自动升级。</p>" +
			"<p>请逐个版本升级，或在运行此版本前手动迁移数据。</p>",
	},
}

// SkipVersionMessage returns the skip-version alert for a language,
// falling back to English for unknown tags.
func SkipVersionMessage(lang string) Message {
	if m, ok := skipVersionMessages[lang]; ok {
		return m
	}
	return skipVersionMessages["en"]
}
