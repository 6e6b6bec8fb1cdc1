package version

import (
	"runtime/debug"
	"strings"
	"testing"
)

func restore() func() {
	v, c, b := Version, Commit, BuildTime
	return func() { Version, Commit, BuildTime = v, c, b }
}

func TestGetStampedValues(t *testing.T) {
	defer restore()()
	Version = "1.4.0"
	Commit = "0123456789abcdef"
	BuildTime = "2026-01-02T03:04:05Z"

	info := Get()
	if info.Version != "1.4.0" {
		t.Errorf("expected stamped version, got %q", info.Version)
	}
	if info.Commit != "0123456" {
		t.Errorf("expected commit shortened to 7 chars, got %q", info.Commit)
	}
	if info.BuildTime != "2026-01-02T03:04:05Z" {
		t.Errorf("expected stamped build time, got %q", info.BuildTime)
	}
	if info.GoVersion == "" {
		t.Error("expected go version from build info")
	}
}

func TestMerge(t *testing.T) {
	bi := &debug.BuildInfo{
		GoVersion: "go1.26.0",
		Main:      debug.Module{Version: "v2.0.1"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abcdef0123"},
			{Key: "vcs.time", Value: "2026-05-06T07:08:09Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	}

	tests := []struct {
		name string
		info Info
		want Info
	}{
		{
			name: "unstamped takes build info",
			info: Info{Version: "dev"},
			want: Info{Version: "2.0.1", Commit: "abcdef0123", BuildTime: "2026-05-06T07:08:09Z", GoVersion: "go1.26.0", Dirty: true},
		},
		{
			name: "stamped values win",
			info: Info{Version: "1.0.0", Commit: "fff", BuildTime: "yesterday"},
			want: Info{Version: "1.0.0", Commit: "fff", BuildTime: "yesterday", GoVersion: "go1.26.0", Dirty: true},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.info.merge(bi)
			if tc.info != tc.want {
				t.Errorf("expected %+v, got %+v", tc.want, tc.info)
			}
		})
	}
}

func TestShortAndString(t *testing.T) {
	tests := []struct {
		info    Info
		short   string
		release bool
	}{
		{Info{Version: "dev"}, "dev", false},
		{Info{Version: "1.0.0", Commit: "abc1234"}, "1.0.0-abc1234", true},
		{Info{Version: "1.0.0", Commit: "abc1234", Dirty: true}, "1.0.0-abc1234-dirty", false},
	}
	for _, tc := range tests {
		if got := tc.info.Short(); got != tc.short {
			t.Errorf("Short() = %q, want %q", got, tc.short)
		}
		if got := tc.info.IsRelease(); got != tc.release {
			t.Errorf("IsRelease() for %q = %v, want %v", tc.short, got, tc.release)
		}
	}

	s := Info{Version: "1.0.0", GoVersion: "go1.26.0", BuildTime: "now"}.String()
	if !strings.HasPrefix(s, "faber 1.0.0 go1.26.0") || !strings.HasSuffix(s, "built now") {
		t.Errorf("unexpected String(): %q", s)
	}
}
