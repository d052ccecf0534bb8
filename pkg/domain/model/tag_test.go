package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/pkgship/courier/pkg/domain/model"
)

func TestIsReleaseTag(t *testing.T) {
	tests := []struct {
		name string
		tag  string
		want bool
	}{
		{
			name: "Plain release tag",
			tag:  "v1.2.3",
			want: true,
		},
		{
			name: "Zero components",
			tag:  "v0.0.0",
			want: true,
		},
		{
			name: "Multi-digit components",
			tag:  "v10.20.30",
			want: true,
		},
		{
			name: "Leading zeros accepted by the literal pattern",
			tag:  "v01.2.3",
			want: true,
		},
		{
			name: "Missing patch component",
			tag:  "v1.2",
			want: false,
		},
		{
			name: "No v prefix",
			tag:  "1.2.3",
			want: false,
		},
		{
			name: "Pre-release suffix",
			tag:  "v1.2.3-rc1",
			want: false,
		},
		{
			name: "Build metadata suffix",
			tag:  "v1.2.3+build5",
			want: false,
		},
		{
			name: "Extra component",
			tag:  "v1.2.3.4",
			want: false,
		},
		{
			name: "Uppercase prefix",
			tag:  "V1.2.3",
			want: false,
		},
		{
			name: "Empty string",
			tag:  "",
			want: false,
		},
		{
			name: "Trailing whitespace",
			tag:  "v1.2.3 ",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Value(t, model.IsReleaseTag(tt.tag)).Equal(tt.want)
		})
	}
}

func TestParseReleaseTag(t *testing.T) {
	tag, err := model.ParseReleaseTag("v1.22.333")
	gt.NoError(t, err)
	gt.Value(t, tag.Name).Equal("v1.22.333")
	gt.Value(t, tag.Major).Equal(1)
	gt.Value(t, tag.Minor).Equal(22)
	gt.Value(t, tag.Patch).Equal(333)
	gt.Value(t, tag.Version()).Equal("1.22.333")
}

func TestParseReleaseTag_Invalid(t *testing.T) {
	for _, name := range []string{"v1.2", "1.2.3", "v1.2.3-rc1", "release-1"} {
		t.Run(name, func(t *testing.T) {
			tag, err := model.ParseReleaseTag(name)
			gt.Error(t, err)
			gt.Value(t, tag).Nil()
		})
	}
}

func TestParseReleaseTag_LeadingZeros(t *testing.T) {
	// Digits as written are preserved in Version even with leading zeros.
	tag, err := model.ParseReleaseTag("v01.02.03")
	gt.NoError(t, err)
	gt.Value(t, tag.Major).Equal(1)
	gt.Value(t, tag.Version()).Equal("01.02.03")
}
