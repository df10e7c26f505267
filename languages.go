package lingopipe

import "strings"

// Languages maps ISO 639-1 codes to human-readable names.
var Languages = map[string]string{
	"af":    "Afrikaans",
	"sq":    "Albanian",
	"am":    "Amharic",
	"ar":    "Arabic",
	"hy":    "Armenian",
	"az":    "Azerbaijani",
	"eu":    "Basque",
	"be":    "Belarusian",
	"bn":    "Bengali",
	"bs":    "Bosnian",
	"bg":    "Bulgarian",
	"ca":    "Catalan",
	"ceb":   "Cebuano",
	"ny":    "Chichewa",
	"zh-CN": "Chinese (Simplified)",
	"zh-TW": "Chinese (Traditional)",
	"co":    "Corsican",
	"hr":    "Croatian",
	"cs":    "Czech",
	"da":    "Danish",
	"nl":    "Dutch",
	"en":    "English",
	"eo":    "Esperanto",
	"et":    "Estonian",
	"tl":    "Filipino",
	"fi":    "Finnish",
	"fr":    "French",
	"fy":    "Frisian",
	"gl":    "Galician",
	"ka":    "Georgian",
	"de":    "German",
	"el":    "Greek",
	"gu":    "Gujarati",
	"ht":    "Haitian Creole",
	"ha":    "Hausa",
	"haw":   "Hawaiian",
	"iw":    "Hebrew",
	"hi":    "Hindi",
	"hmn":   "Hmong",
	"hu":    "Hungarian",
	"is":    "Icelandic",
	"ig":    "Igbo",
	"id":    "Indonesian",
	"ga":    "Irish",
	"it":    "Italian",
	"ja":    "Japanese",
	"jw":    "Javanese",
	"kn":    "Kannada",
	"kk":    "Kazakh",
	"km":    "Khmer",
	"ko":    "Korean",
	"ku":    "Kurdish (Kurmanji)",
	"ky":    "Kyrgyz",
	"lo":    "Lao",
	"la":    "Latin",
	"lv":    "Latvian",
	"lt":    "Lithuanian",
	"lb":    "Luxembourgish",
	"mk":    "Macedonian",
	"mg":    "Malagasy",
	"ms":    "Malay",
	"ml":    "Malayalam",
	"mt":    "Maltese",
	"mi":    "Maori",
	"mr":    "Marathi",
	"mn":    "Mongolian",
	"my":    "Myanmar (Burmese)",
	"ne":    "Nepali",
	"no":    "Norwegian",
	"ps":    "Pashto",
	"fa":    "Persian",
	"pl":    "Polish",
	"pt":    "Portuguese",
	"pa":    "Punjabi",
	"ro":    "Romanian",
	"ru":    "Russian",
	"sm":    "Samoan",
	"gd":    "Scots Gaelic",
	"sr":    "Serbian",
	"st":    "Sesotho",
	"sn":    "Shona",
	"sd":    "Sindhi",
	"si":    "Sinhala",
	"sk":    "Slovak",
	"sl":    "Slovenian",
	"so":    "Somali",
	"es":    "Spanish",
	"su":    "Sundanese",
	"sw":    "Swahili",
	"sv":    "Swedish",
	"tg":    "Tajik",
	"ta":    "Tamil",
	"te":    "Telugu",
	"th":    "Thai",
	"tr":    "Turkish",
	"uk":    "Ukrainian",
	"ur":    "Urdu",
	"uz":    "Uzbek",
	"vi":    "Vietnamese",
	"cy":    "Welsh",
	"xh":    "Xhosa",
	"yi":    "Yiddish",
	"yo":    "Yoruba",
	"zu":    "Zulu",
}

// PopularLanguages lists frequently used language codes for quick access.
var PopularLanguages = []string{
	"en", "es", "fr", "de", "zh-CN", "ja", "ko", "ar", "ru", "pt", "hi", "it",
}

// SpeechLanguages contains codes supported by the Google speech endpoint.
var SpeechLanguages = map[string]bool{
	"af": true, "ar": true, "bn": true, "bs": true, "ca": true, "cs": true,
	"cy": true, "da": true, "de": true, "el": true, "en": true, "eo": true,
	"es": true, "et": true, "fi": true, "fr": true, "gu": true, "hi": true,
	"hr": true, "hu": true, "id": true, "is": true, "it": true, "iw": true,
	"ja": true, "jw": true, "km": true, "kn": true, "ko": true, "la": true,
	"lv": true, "mk": true, "ml": true, "mr": true, "my": true, "ne": true,
	"nl": true, "no": true, "pl": true, "pt": true, "ro": true, "ru": true,
	"si": true, "sk": true, "sq": true, "sr": true, "su": true, "sv": true,
	"sw": true, "ta": true, "te": true, "th": true, "tl": true, "tr": true,
	"uk": true, "ur": true, "vi": true, "zh-CN": true, "zh-TW": true,
}

// RTLLanguages contains language codes that use right-to-left text direction.
var RTLLanguages = map[string]bool{
	"ar": true, // Arabic
	"iw": true, // Hebrew
	"fa": true, // Persian/Farsi
	"ur": true, // Urdu
	"ps": true, // Pashto
	"sd": true, // Sindhi
}

// LanguageName returns the human-readable name for a language code.
// Falls back to the code itself if not found.
func LanguageName(code string) string {
	if code == AutoDetect {
		return "Auto-detect"
	}
	if name, ok := Languages[code]; ok {
		return name
	}
	return code
}

// LanguageCode returns the code for a human-readable language name.
// Falls back to the name itself if not found.
func LanguageCode(name string) string {
	if strings.EqualFold(name, "Auto-detect") {
		return AutoDetect
	}
	for code, n := range Languages {
		if strings.EqualFold(n, name) {
			return code
		}
	}
	return name
}

// IsValidLanguage reports whether code is a known language code or AutoDetect.
func IsValidLanguage(code string) bool {
	if code == AutoDetect {
		return true
	}
	_, ok := Languages[code]
	return ok
}

// IsSpeechSupported reports whether code is supported for speech synthesis.
func IsSpeechSupported(code string) bool {
	return SpeechLanguages[code]
}

// IsRTL returns true if the language uses right-to-left text direction.
func IsRTL(code string) bool {
	return Direction(code) == "rtl"
}

// Direction returns "rtl" for right-to-left languages, "ltr" otherwise.
func Direction(code string) string {
	base := strings.ToLower(strings.SplitN(code, "-", 2)[0])
	if RTLLanguages[base] || RTLLanguages[strings.ToLower(code)] {
		return "rtl"
	}
	return "ltr"
}

// NormalizeCode converts a language code to its canonical form
// (e.g. "ZH_cn" and "zh-hans" both become "zh-CN"). An empty code
// normalizes to AutoDetect.
func NormalizeCode(code string) string {
	if code == "" {
		return AutoDetect
	}
	code = strings.ToLower(strings.TrimSpace(code))
	code = strings.ReplaceAll(code, "_", "-")

	switch code {
	case "zh-cn", "zh-hans", "zh":
		return "zh-CN"
	case "zh-tw", "zh-hant":
		return "zh-TW"
	case "he":
		return "iw" // Google uses the legacy code for Hebrew
	}
	return code
}
