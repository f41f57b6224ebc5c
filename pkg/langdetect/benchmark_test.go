package langdetect_test

import (
	"testing"

	"github.com/yaklabco/mdpreview/pkg/langdetect"
)

func BenchmarkDetect(b *testing.B) {
	samples := []struct {
		name string
		code string
	}{
		{"probe/go", "package main\n\nimport \"fmt\"\n\nfunc main() {\n\tfmt.Println(\"hi\")\n}\n"},
		{"probe/sql", "SELECT id, name FROM users WHERE active = 1 ORDER BY name;"},
		{"probe/yaml", "name: docs\non:\n  push:\n    branches: [main]\n"},
		{"shebang", "#!/usr/bin/env bash\nset -euo pipefail\necho done\n"},
		{"classifier", "module Greeter\n  def self.hello(name)\n    puts \"hi #{name}\"\n  end\nend\n"},
		{"empty", "   \n"},
	}

	for _, sample := range samples {
		content := []byte(sample.code)
		b.Run(sample.name, func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				langdetect.Detect(content)
			}
		})
	}
}
