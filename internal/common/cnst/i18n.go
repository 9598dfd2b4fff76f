package cnst

const (
	// LangEN is the English language code
	LangEN = "en"
	// LangAR is the Arabic language code; the platform is RTL-first
	LangAR = "ar"
	// LangDefault is the fallback language for API messages
	LangDefault = LangEN
)

const (
	// XLang is the header clients use to force a response language
	XLang = "X-Lang"
)
