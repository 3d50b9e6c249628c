package utils

import "testing"

func TestHumanizeBytes(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{10, "10 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{1024 * 1024, "1.00 MB"},
		{1024*1024*5 + 100, "5.00 MB"},
		{1024 * 1024 * 1024, "1.00 GB"},
		{1024 * 1024 * 1024 * 1024, "1.00 TB"},
	}
	for _, c := range cases {
		if got := HumanizeBytes(c.in); got != c.want {
			t.Fatalf("HumanizeBytes(%d) = %q; want %q", c.in, got, c.want)
		}
	}
}

func TestHumanizeBytesCompact(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0B"},
		{1536, "1.50K"},
		{1024 * 1024 * 2, "2.00M"},
	}
	for _, c := range cases {
		if got := HumanizeBytesCompact(c.in); got != c.want {
			t.Fatalf("HumanizeBytesCompact(%d) = %q; want %q", c.in, got, c.want)
		}
	}
}
