package schema

import (
	"path/filepath"
	"sort"
	"strings"
)

// extensionLanguages maps common file extensions to language names.
// Unmapped extensions pass through uppercased without the dot.
var extensionLanguages = map[string]string{
	".go":    "Go",
	".js":    "JavaScript",
	".jsx":   "JavaScript",
	".ts":    "TypeScript",
	".tsx":   "TypeScript",
	".py":    "Python",
	".java":  "Java",
	".rb":    "Ruby",
	".rs":    "Rust",
	".c":     "C",
	".h":     "C",
	".cpp":   "C++",
	".cc":    "C++",
	".cs":    "C#",
	".php":   "PHP",
	".swift": "Swift",
	".kt":    "Kotlin",
	".scala": "Scala",
	".sh":    "Shell",
	".sql":   "SQL",
	".html":  "HTML",
	".css":   "CSS",
	".scss":  "CSS",
	".md":    "Markdown",
	".yml":   "YAML",
	".yaml":  "YAML",
	".json":  "JSON",
	".toml":  "TOML",
	".xml":   "XML",
}

// LanguageForExtension maps a file extension (with leading dot) to a language
// name. Unknown extensions are returned uppercased without the dot.
func LanguageForExtension(ext string) string {
	if lang, ok := extensionLanguages[strings.ToLower(ext)]; ok {
		return lang
	}
	return strings.ToUpper(strings.TrimPrefix(ext, "."))
}

// TopLanguages returns the top n languages for a set of file paths, ranked by
// extension frequency. Files without an extension are skipped. Ties are broken
// alphabetically so the result is deterministic.
func TopLanguages(files []string, n int) ([]string, map[string]int) {
	counts := make(map[string]int)
	for _, f := range files {
		ext := filepath.Ext(f)
		if ext == "" {
			continue
		}
		counts[LanguageForExtension(ext)]++
	}

	langs := make([]string, 0, len(counts))
	for lang := range counts {
		langs = append(langs, lang)
	}
	sort.Slice(langs, func(i, j int) bool {
		if counts[langs[i]] != counts[langs[j]] {
			return counts[langs[i]] > counts[langs[j]]
		}
		return langs[i] < langs[j]
	})

	if len(langs) > n {
		langs = langs[:n]
	}
	return langs, counts
}

// FormatExperts renders up to two expert names for table cells.
func FormatExperts(names []string) string {
	if len(names) == 0 {
		return ""
	}
	if len(names) > 2 {
		names = names[:2]
	}
	return strings.Join(names, ", ")
}
