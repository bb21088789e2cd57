package gating

import (
	"testing"
	"time"
)

func TestParseDecisionLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		ok   bool
		want Decision
	}{
		{
			name: "typical decision",
			line: "MRTC deformROI target out decision = 1: voxels out 120, total = 2400, tgt out fraction = 0.05",
			ok:   true,
			want: Decision{Flag: 1, VoxelsOut: 120, TotalVoxels: 2400, FractionOut: 0.05},
		},
		{
			name: "zero fraction",
			line: "MRTC deformROI target out decision = 0: voxels out 0, total = 1850, tgt out fraction = 0",
			ok:   true,
			want: Decision{Flag: 0, VoxelsOut: 0, TotalVoxels: 1850, FractionOut: 0},
		},
		{
			name: "negative flag",
			line: "MRTC deformROI target out decision = -1: voxels out 33, total = 100, tgt out fraction = 0.33",
			ok:   true,
			want: Decision{Flag: -1, VoxelsOut: 33, TotalVoxels: 100, FractionOut: 0.33},
		},
		{
			name: "embedded in longer line",
			line: "<Message>MRTC deformROI target out decision = 1: voxels out 5, total = 50, tgt out fraction = 0.1</Message>",
			ok:   true,
			want: Decision{Flag: 1, VoxelsOut: 5, TotalVoxels: 50, FractionOut: 0.1},
		},
		{
			name: "unrelated line",
			line: "MRTC beam state changed to HOLD",
			ok:   false,
		},
		{
			name: "bad fraction token",
			line: "MRTC deformROI target out decision = 1: voxels out 5, total = 50, tgt out fraction = ..",
			ok:   false,
		},
		{
			name: "empty line",
			line: "",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDecisionLine(tt.line)
			if ok != tt.ok {
				t.Fatalf("ParseDecisionLine(%q) ok = %v, want %v", tt.line, ok, tt.ok)
			}
			if !ok {
				return
			}
			if got != tt.want {
				t.Errorf("ParseDecisionLine(%q) = %+v, want %+v", tt.line, got, tt.want)
			}
		})
	}
}

func TestParseEntryTime(t *testing.T) {
	tests := []struct {
		name string
		line string
		ok   bool
		want time.Time
	}{
		{
			name: "with milliseconds",
			line: "<LogEntryTime>07-May-2015 13:24:46.867462</LogEntryTime>",
			ok:   true,
			want: time.Date(2015, time.May, 7, 13, 24, 46, 867e6, time.UTC),
		},
		{
			name: "date-time only",
			line: "<LogEntryTime>07-May-2015 13:24:46</LogEntryTime>",
			ok:   true,
			want: time.Date(2015, time.May, 7, 13, 24, 46, 0, time.UTC),
		},
		{
			name: "iso style",
			line: "<LogEntryTime>2015-05-07 13:24:46.100000</LogEntryTime>",
			ok:   true,
			want: time.Date(2015, time.May, 7, 13, 24, 46, 100e6, time.UTC),
		},
		{
			name: "no tag",
			line: "MRTC deformROI target out decision = 1: voxels out 5, total = 50, tgt out fraction = 0.1",
			ok:   false,
		},
		{
			name: "truncated timestamp",
			line: "<LogEntryTime>07-May-2015</LogEntryTime>",
			ok:   false,
		},
		{
			name: "garbage timestamp",
			line: "<LogEntryTime>not a timestamp at all!</LogEntryTime>",
			ok:   false,
		},
		{
			name: "empty capture",
			line: "<LogEntryTime></LogEntryTime>",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseEntryTime(tt.line)
			if ok != tt.ok {
				t.Fatalf("ParseEntryTime(%q) ok = %v, want %v", tt.line, ok, tt.ok)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("ParseEntryTime(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}
