package quran

import "testing"

func TestVerseCount(t *testing.T) {
	cases := []struct {
		surah int
		want  int
	}{
		{1, 7},
		{2, 286},
		{103, 3},
		{114, 6},
	}

	for _, tc := range cases {
		got, err := VerseCount(tc.surah)
		if err != nil {
			t.Fatalf("VerseCount(%d) returned error: %v", tc.surah, err)
		}
		if got != tc.want {
			t.Errorf("VerseCount(%d) = %d, want %d", tc.surah, got, tc.want)
		}
	}
}

func TestVerseCountOutOfRange(t *testing.T) {
	for _, surah := range []int{0, -1, 115} {
		if _, err := VerseCount(surah); err == nil {
			t.Errorf("VerseCount(%d) should fail", surah)
		}
	}
}

func TestSurahName(t *testing.T) {
	name, err := SurahName(1)
	if err != nil {
		t.Fatalf("SurahName(1) returned error: %v", err)
	}
	if name != "الفاتحة" {
		t.Errorf("SurahName(1) = %q, want الفاتحة", name)
	}

	if _, err := SurahName(115); err == nil {
		t.Error("SurahName(115) should fail")
	}
}

func TestReciterID(t *testing.T) {
	id, err := ReciterID("الشيخ مشاري العفاسي")
	if err != nil {
		t.Fatalf("ReciterID by display name failed: %v", err)
	}
	if id != "Alafasy_64kbps" {
		t.Errorf("unexpected reciter id %q", id)
	}

	// Raw identifiers pass through.
	id, err = ReciterID("Alafasy_64kbps")
	if err != nil {
		t.Fatalf("ReciterID by raw id failed: %v", err)
	}
	if id != "Alafasy_64kbps" {
		t.Errorf("unexpected reciter id %q", id)
	}

	if _, err := ReciterID("nobody"); err == nil {
		t.Error("unknown reciter should fail")
	}
}

func TestRecitersListed(t *testing.T) {
	if len(Reciters()) == 0 {
		t.Fatal("no reciters registered")
	}
}
