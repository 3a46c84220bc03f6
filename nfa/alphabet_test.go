package nfa

import (
	"testing"
)

func TestByteClassesSingleton(t *testing.T) {
	bc := SingletonByteClasses()

	for b := 0; b < 256; b++ {
		if class := bc.Get(byte(b)); class != byte(b) {
			t.Errorf("Get(%d) = %d, want %d", b, class, b)
		}
	}
	if !bc.IsSingleton() {
		t.Error("IsSingleton() = false, want true")
	}
	if bc.AlphabetLen() != 256 {
		t.Errorf("AlphabetLen() = %d, want 256", bc.AlphabetLen())
	}
}

func TestByteClassSetRanges(t *testing.T) {
	tests := []struct {
		name   string
		ranges [][2]byte
		want   int
		same   [][2]byte
		differ [][2]byte
	}{
		{
			name: "none",
			want: 1,
			same: [][2]byte{{0, 255}},
		},
		{
			name:   "a-z",
			ranges: [][2]byte{{'a', 'z'}},
			want:   3,
			same:   [][2]byte{{'a', 'z'}, {0, '`'}, {'{', 255}},
			differ: [][2]byte{{'`', 'a'}, {'z', '{'}},
		},
		{
			name:   "overlapping",
			ranges: [][2]byte{{'a', 'm'}, {'h', 'z'}},
			want:   5,
			same:   [][2]byte{{'a', 'g'}, {'h', 'm'}},
			differ: [][2]byte{{'g', 'h'}, {'m', 'n'}},
		},
		{
			name:   "edges",
			ranges: [][2]byte{{0, 0}, {255, 255}},
			want:   3,
			differ: [][2]byte{{0, 1}, {254, 255}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var bcs ByteClassSet
			for _, r := range tt.ranges {
				bcs.SetRange(r[0], r[1])
			}
			bc := bcs.ByteClasses()

			if got := bc.AlphabetLen(); got != tt.want {
				t.Errorf("AlphabetLen() = %d, want %d", got, tt.want)
			}
			if got := len(bc.Representatives()); got != tt.want {
				t.Errorf("len(Representatives()) = %d, want %d", got, tt.want)
			}
			for _, p := range tt.same {
				if bc.Get(p[0]) != bc.Get(p[1]) {
					t.Errorf("bytes %#x and %#x in different classes", p[0], p[1])
				}
			}
			for _, p := range tt.differ {
				if bc.Get(p[0]) == bc.Get(p[1]) {
					t.Errorf("bytes %#x and %#x share a class", p[0], p[1])
				}
			}
		})
	}
}

// Every NFA transition must be constant over each class.
func TestNFAByteClassesRespectTransitions(t *testing.T) {
	for _, pattern := range []string{`[a-z]+\d`, `(?i)hello`, `é|[α-ω]`, `.`, `foo|bar`} {
		t.Run(pattern, func(t *testing.T) {
			n := mustCompile(t, pattern)
			bc := n.ByteClasses()
			for sid := 0; sid < n.States(); sid++ {
				s := n.State(StateID(sid))
				for b := 1; b < 256; b++ {
					if bc.Get(byte(b)) != bc.Get(byte(b-1)) {
						continue
					}
					if s.Step(byte(b)) != s.Step(byte(b-1)) {
						t.Fatalf("state %d: bytes %#x and %#x share class %d but step differently",
							sid, b-1, b, bc.Get(byte(b)))
					}
				}
			}
		})
	}
}
