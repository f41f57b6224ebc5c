// Package langdetect guesses the language of an untagged fenced code block.
//
// Detection runs three stages: an interpreter shebang, a set of cheap
// structural probes, and finally go-enry's classifier restricted to a fixed
// candidate list. The result is a lower-case fence tag such as "python";
// "text" means no confident guess.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Fence tags returned by Detect.
const (
	Text       = "text"
	Bash       = "bash"
	CSS        = "css"
	Dockerfile = "dockerfile"
	Go         = "go"
	HTML       = "html"
	Java       = "java"
	JavaScript = "javascript"
	JSON       = "json"
	Python     = "python"
	Rust       = "rust"
	SQL        = "sql"
	XML        = "xml"
	YAML       = "yaml"
)

// probe recognises one language from unmistakable surface patterns.
type probe struct {
	tag   string
	match func(s sample) bool
}

// sample is the code under inspection in the forms the probes need.
type sample struct {
	raw     []byte
	text    string
	trimmed []byte
}

// probes run in order; earlier entries win.
//
//nolint:gochecknoglobals // Read-only probe table.
var probes = []probe{
	{Go, isGo},
	{Java, isJava},
	{Python, isPython},
	{XML, isXML},
	{HTML, isHTML},
	{JSON, isJSON},
	{Dockerfile, isDockerfile},
	{SQL, isSQL},
	{Rust, isRust},
	{CSS, isCSS},
	{JavaScript, isJavaScript},
	{YAML, isYAML},
}

// classifierCandidates limits go-enry's classifier to languages likely to
// appear in documentation.
//
//nolint:gochecknoglobals // Read-only candidate list.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "XML", "Dockerfile",
}

// Detect returns the fence tag for content, or Text when unsure.
func Detect(content []byte) string {
	if len(bytes.TrimSpace(content)) == 0 {
		return Text
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	s := sample{raw: content, text: string(content), trimmed: bytes.TrimSpace(content)}
	for _, p := range probes {
		if p.match(s) {
			return p.tag
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return normalize(lang)
	}
	return Text
}

// normalize maps go-enry language names to fence tags.
func normalize(lang string) string {
	if lang == "Shell" {
		return Bash
	}
	return strings.ToLower(lang)
}

func isGo(s sample) bool {
	return bytes.HasPrefix(s.trimmed, []byte("package ")) && !strings.Contains(s.text, ";\n")
}

func isJava(s sample) bool {
	if bytes.HasPrefix(s.trimmed, []byte("package ")) && strings.Contains(s.text, ";") {
		return true
	}
	return strings.Contains(s.text, "public static void main") ||
		strings.Contains(s.text, "System.out.println") ||
		(strings.Contains(s.text, "public class ") && strings.Contains(s.text, "{"))
}

func isPython(s sample) bool {
	if strings.Contains(s.text, "def ") && strings.Contains(s.text, "):") {
		return true
	}
	// Go imports use "import (", Python never does.
	if strings.Contains(s.text, "import ") && !strings.Contains(s.text, "import (") {
		if strings.Contains(s.text, "from ") || strings.HasPrefix(strings.TrimSpace(s.text), "import ") {
			return true
		}
	}
	return strings.Contains(s.text, "__name__") || strings.Contains(s.text, "__main__")
}

func isXML(s sample) bool {
	return bytes.HasPrefix(s.trimmed, []byte("<?xml"))
}

func isHTML(s sample) bool {
	lower := bytes.ToLower(s.trimmed)
	for _, marker := range []string{"<!doctype html", "<html", "<head>", "<body>", "<div", "<p>"} {
		if bytes.Contains(lower, []byte(marker)) {
			return true
		}
	}
	return false
}

func isJSON(s sample) bool {
	return (bytes.HasPrefix(s.trimmed, []byte("{")) || bytes.HasPrefix(s.trimmed, []byte("["))) &&
		bytes.Contains(s.trimmed, []byte(`"`)) &&
		!bytes.Contains(s.trimmed, []byte(";"))
}

func isDockerfile(s sample) bool {
	return bytes.HasPrefix(s.trimmed, []byte("FROM ")) ||
		(bytes.Contains(s.raw, []byte("\nFROM ")) && bytes.Contains(s.raw, []byte("\nRUN "))) ||
		(bytes.Contains(s.raw, []byte("WORKDIR ")) && bytes.Contains(s.raw, []byte("COPY ")))
}

func isSQL(s sample) bool {
	upper := strings.ToUpper(strings.TrimSpace(s.text))
	for _, verb := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE ", "ALTER ", "WITH "} {
		if strings.HasPrefix(upper, verb) {
			return true
		}
	}
	return false
}

func isRust(s sample) bool {
	return strings.Contains(s.text, "fn main()") ||
		strings.Contains(s.text, "println!") ||
		strings.Contains(s.text, "let mut ")
}

// isCSS looks for a selector block whose body is made of property declarations.
func isCSS(s sample) bool {
	open := strings.IndexByte(s.text, '{')
	closing := strings.LastIndexByte(s.text, '}')
	if open <= 0 || closing < open {
		return false
	}

	selector := strings.TrimSpace(s.text[:open])
	if selector == "" || strings.ContainsAny(selector, "()=;") {
		return false
	}

	body := s.text[open+1 : closing]
	return strings.Contains(body, ":") && strings.Contains(body, ";") && !strings.Contains(body, "(")
}

func isJavaScript(s sample) bool {
	return strings.Contains(s.text, "=>") ||
		strings.Contains(s.text, "const ") ||
		strings.Contains(s.text, "let ") ||
		strings.Contains(s.text, "console.log") ||
		strings.Contains(s.text, "function ")
}

// isYAML counts "key: value" lines and root-level list items.
func isYAML(s sample) bool {
	keys := 0
	for _, line := range bytes.Split(s.raw, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || bytes.HasPrefix(line, []byte("#")) {
			continue
		}
		if bytes.Contains(line, []byte(": ")) &&
			!bytes.Contains(line, []byte("(")) &&
			!bytes.Contains(line, []byte("{")) &&
			!bytes.HasPrefix(line, []byte(`"`)) {
			keys++
		}
		if bytes.HasPrefix(line, []byte("- ")) {
			keys++
		}
	}
	return keys >= 2
}
