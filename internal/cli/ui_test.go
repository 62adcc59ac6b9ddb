package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/energydiagram/pkg/pipeline"
)

func TestStatsLine(t *testing.T) {
	tests := []struct {
		name    string
		stats   pipeline.Stats
		cache   pipeline.CacheInfo
		formats int
		want    []string
		absent  []string
	}{
		{
			name:    "fresh render",
			stats:   pipeline.Stats{Levels: 3, Labels: 1, Links: 2, RenderTime: 14 * time.Millisecond},
			formats: 1,
			want:    []string{"3 levels", "1 label", "2 links", "fresh", "14ms"},
			absent:  []string{"cached"},
		},
		{
			name:    "levels only",
			stats:   pipeline.Stats{Levels: 1},
			formats: 1,
			want:    []string{"1 level", "fresh"},
			absent:  []string{"label", "link"},
		},
		{
			name:    "partly cached",
			stats:   pipeline.Stats{Levels: 2, RenderTime: time.Millisecond},
			cache:   pipeline.CacheInfo{ArtifactHits: 1},
			formats: 2,
			want:    []string{"1/2 cached", "1ms"},
			absent:  []string{"fresh"},
		},
		{
			name:    "fully cached",
			stats:   pipeline.Stats{Levels: 2, RenderTime: time.Millisecond},
			cache:   pipeline.CacheInfo{ArtifactHits: 2, RenderHit: true},
			formats: 2,
			want:    []string{"cached"},
			absent:  []string{"fresh", "1ms", "2/2"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := statsLine(tt.stats, tt.cache, tt.formats)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("statsLine() = %q, missing %q", got, w)
				}
			}
			for _, a := range tt.absent {
				if strings.Contains(got, a) {
					t.Errorf("statsLine() = %q, should not contain %q", got, a)
				}
			}
		})
	}
}

func TestArtifactLine(t *testing.T) {
	got := artifactLine("png", "out/sn2.png", 4096)
	for _, want := range []string{"png", "out/sn2.png", "4.0 KiB"} {
		if !strings.Contains(got, want) {
			t.Errorf("artifactLine() = %q, missing %q", got, want)
		}
	}
}

func TestCompletionCommand(t *testing.T) {
	isolate(t)
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			var out strings.Builder
			root := New(&strings.Builder{}, LogInfo).RootCommand()
			root.SetArgs([]string{"completion", shell})
			root.SetOut(&out)
			if err := root.Execute(); err != nil {
				t.Fatalf("completion %s: %v", shell, err)
			}
			if !strings.Contains(out.String(), appName) {
				t.Errorf("%s script does not mention %s", shell, appName)
			}
		})
	}
	if err := runCLI(t, "completion", "tcsh"); err == nil {
		t.Error("completion accepted an unsupported shell")
	}
}

func TestFlagValueCompletion(t *testing.T) {
	isolate(t)
	var out strings.Builder
	root := New(&strings.Builder{}, LogInfo).RootCommand()
	root.SetArgs([]string{"__complete", "render", "x.yaml", "--style", ""})
	root.SetOut(&out)
	if err := root.Execute(); err != nil {
		t.Fatalf("__complete: %v", err)
	}
	for _, want := range []string{pipeline.StyleSimple, pipeline.StyleHanddrawn} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("style completions %q lack %q", out.String(), want)
		}
	}
}
