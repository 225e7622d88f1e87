package sarif

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scan-io-git/benchscore/internal/findings"
)

func TestPathExtractor(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"relative uri", "src/main/java/org/owasp/benchmark/testcode/BenchmarkTest01870.java", "BenchmarkTest01870", true},
		{"file uri", "file:///work/benchmark/BenchmarkTest00001.java", "BenchmarkTest00001", true},
		{"bare file name", "BenchmarkTest00042.java", "BenchmarkTest00042", true},
		{"four digits", "testcode/BenchmarkTest0001.java", findings.NoMatchName, false},
		{"six digits", "testcode/BenchmarkTest000001.java", findings.NoMatchName, false},
		{"not java", "testcode/BenchmarkTest00001.jsp", findings.NoMatchName, false},
		{"helper class", "src/main/java/org/owasp/benchmark/helpers/Utils.java", findings.NoMatchName, false},
		{"empty", "", findings.NoMatchName, false},
	}

	extractor := PathExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractor.Extract(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestFlowMessageExtractor(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{
			name:   "source and sink in same file",
			input:  "Untrusted data flows from BenchmarkTest00001.java:45 to BenchmarkTest00001.java:61",
			want:   "BenchmarkTest00001",
			wantOK: true,
		},
		{
			name:   "sink in helper",
			input:  "Found a tainted flow from BenchmarkTest00123.java:50 into the sink at org/owasp/benchmark/helpers/DatabaseHelper.java:120.",
			want:   "BenchmarkTest00123",
			wantOK: true,
		},
		{
			name:   "first benchmark file names the test",
			input:  "Data from BenchmarkTest00007.java:12 reaches BenchmarkTest00008.java:30",
			want:   "BenchmarkTest00007",
			wantOK: true,
		},
		{
			name:   "single location",
			input:  "Dangerous call in BenchmarkTest00001.java:45",
			want:   findings.NoMatchName,
			wantOK: false,
		},
		{
			name:   "no line numbers",
			input:  "Data flows from BenchmarkTest00001.java to BenchmarkTest00001.java",
			want:   findings.NoMatchName,
			wantOK: false,
		},
		{
			name:   "path uri",
			input:  "src/main/java/BenchmarkTest00001.java",
			want:   findings.NoMatchName,
			wantOK: false,
		},
	}

	extractor := FlowMessageExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractor.Extract(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}
