package hash

import "testing"

func TestSumEmpty(t *testing.T) {
	if got := Sum(nil); got != Seed {
		t.Errorf("Sum(nil) = %d, want %d", got, Seed)
	}
}

func TestSumSingleByte(t *testing.T) {
	// 5381<<5 + (5381 ^ 'a') = 172192 + 5476
	if got := Sum([]byte("a")); got != 177668 {
		t.Errorf("Sum(\"a\") = %d, want 177668", got)
	}
}

func TestSumOrderSensitive(t *testing.T) {
	if Sum([]byte("ab")) == Sum([]byte("ba")) {
		t.Error("Sum should be order-sensitive")
	}
}

func TestDigestIncremental(t *testing.T) {
	d := New()
	d.WriteString("hello ")
	d.WriteString("world")

	if got, want := d.Sum32(), SumString("hello world"); got != want {
		t.Errorf("incremental digest = %d, want %d", got, want)
	}
}

func TestDigestUint64MatchesBytes(t *testing.T) {
	d1 := New()
	d1.WriteUint64(0x1122334455667788)

	d2 := New()
	d2.Write([]byte{0x88, 0x77, 0x66, 0x55, 0x44, 0x33, 0x22, 0x11})

	if d1.Sum32() != d2.Sum32() {
		t.Errorf("WriteUint64 = %d, want little-endian byte fold %d", d1.Sum32(), d2.Sum32())
	}
}

func TestSumDeterministic(t *testing.T) {
	inputs := []string{"", "a", "styles.csv", "the quick brown fox"}
	for _, in := range inputs {
		if SumString(in) != SumString(in) {
			t.Errorf("SumString(%q) not deterministic", in)
		}
	}
}
