package transpiler

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/polytrans/internal/langspec"
)

// TestTranspileSnapshots snapshots the full four-panel output of five
// worked end-to-end scenarios, grounded on the teacher's
// internal/interp/fixture_test.go snaps.MatchSnapshot fixture-sweep
// pattern.
func TestTranspileSnapshots(t *testing.T) {
	tests := []struct {
		name string
		src  string
		lang langspec.Language
	}{
		{
			name: "scripting_to_others",
			src:  "x = 1\nprint(f\"x={x}\")\n",
			lang: langspec.PY,
		},
		{
			name: "c_counted_loop",
			src:  "int main() {\n    for (int i = 0; i < 5; i++) {\n        printf(\"%d\\n\", i);\n    }\n    return 0;\n}\n",
			lang: langspec.C,
		},
		{
			name: "cpp_cout_stream",
			src:  "int main() {\n    int x = 1;\n    cout << \"x=\" << x << endl;\n    return 0;\n}\n",
			lang: langspec.CPP,
		},
		{
			name: "jv_main_class",
			src:  "public class Main {\n    public static void main(String[] args) {\n        System.out.println(\"hi\");\n    }\n}\n",
			lang: langspec.JV,
		},
		{
			name: "scripting_class_refuses_c",
			src:  "class P:\n    def __init__(self):\n        self.n = 0\n    def tick(self):\n        self.n = self.n + 1\n",
			lang: langspec.PY,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := New().Transpile(tt.src, tt.lang)
			snaps.MatchSnapshot(t, tt.name+"_py", result.PY)
			snaps.MatchSnapshot(t, tt.name+"_c", result.C)
			snaps.MatchSnapshot(t, tt.name+"_cpp", result.CPP)
			snaps.MatchSnapshot(t, tt.name+"_jv", result.JV)
		})
	}
}

// TestTranspileIsDeterministic uses testify's require.Equal to check
// that transpiling the same source twice yields identical output, the
// kind of check the teacher's own if-based style gets unwieldy for.
func TestTranspileIsDeterministic(t *testing.T) {
	src := "x = 1\ny = 2\nprint(x + y)\n"
	first := New().Transpile(src, langspec.PY)
	second := New().Transpile(src, langspec.PY)

	require.Equal(t, first.PY, second.PY, "transpiling the same source twice must be deterministic")
	require.Equal(t, first.C, second.C)
	require.Equal(t, first.CPP, second.CPP)
	require.Equal(t, first.JV, second.JV)
	require.True(t, first.Success)
	require.Empty(t, first.Errors)
}
