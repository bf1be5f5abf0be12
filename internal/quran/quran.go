// Package quran holds the static collection metadata the pipeline
// needs: verse counts per surah, Arabic surah names, and the mapping
// from reciter display names to everyayah.com identifiers.
package quran

import "fmt"

// SurahCount is the number of surahs in the Quran.
const SurahCount = 114

// verseCounts[i] is the number of ayat in surah i+1.
var verseCounts = [SurahCount]int{
	7, 286, 200, 176, 120, 165, 206, 75, 129, 109,
	123, 111, 43, 52, 99, 128, 111, 110, 98, 135,
	112, 78, 118, 64, 77, 227, 93, 88, 69, 60,
	34, 30, 73, 54, 45, 83, 182, 88, 75, 85,
	54, 53, 89, 59, 37, 35, 38, 29, 18, 45,
	60, 49, 62, 55, 78, 96, 29, 22, 24, 13,
	14, 11, 11, 18, 12, 12, 30, 52, 52, 44,
	28, 28, 20, 56, 40, 31, 50, 40, 46, 42,
	29, 19, 36, 25, 22, 17, 19, 26, 30, 20,
	15, 21, 11, 8, 8, 19, 5, 8, 8, 11,
	11, 8, 3, 9, 5, 4, 7, 3, 6, 3,
	5, 4, 5, 6,
}

var surahNames = [SurahCount]string{
	"الفاتحة", "البقرة", "آل عمران", "النساء", "المائدة", "الأنعام", "الأعراف", "الأنفال", "التوبة", "يونس",
	"هود", "يوسف", "الرعد", "إبراهيم", "الحجر", "النحل", "الإسراء", "الكهف", "مريم", "طه",
	"الأنبياء", "الحج", "المؤمنون", "النور", "الفرقان", "الشعراء", "النمل", "القصص", "العنكبوت", "الروم",
	"لقمان", "السجدة", "الأحزاب", "سبأ", "فاطر", "يس", "الصافات", "ص", "الزمر", "غافر",
	"فصلت", "الشورى", "الزخرف", "الدخان", "الجاثية", "الأحقاف", "محمد", "الفتح", "الحجرات", "ق",
	"الذاريات", "الطور", "النجم", "القمر", "الرحمن", "الواقعة", "الحديد", "المجادلة", "الحشر", "الممتحنة",
	"الصف", "الجمعة", "المنافقون", "التغابن", "الطلاق", "التحريم", "الملك", "القلم", "الحاقة", "المعارج",
	"نوح", "الجن", "المزمل", "المدثر", "القيامة", "الإنسان", "المرسلات", "النبأ", "النازعات", "عبس",
	"التكوير", "الانفطار", "المطففين", "الانشقاق", "البروج", "الطارق", "الأعلى", "الغاشية", "الفجر", "البلد",
	"الشمس", "الليل", "الضحى", "الشرح", "التين", "العلق", "القدر", "البينة", "الزلزلة", "العاديات",
	"القارعة", "التكاثر", "العصر", "الهمزة", "الفيل", "قريش", "الماعون", "الكوثر", "الكافرون", "النصر",
	"المسد", "الإخلاص", "الفلق", "الناس",
}

// reciters maps the Arabic display name to the everyayah.com folder id.
var reciters = map[string]string{
	"الشيخ عبدالباسط عبدالصمد":        "AbdulSamad_64kbps_QuranExplorer.Com",
	"الشيخ عبدالباسط عبدالصمد (مرتل)": "Abdul_Basit_Murattal_64kbps",
	"الشيخ عبدالرحمن السديس":          "Abdurrahmaan_As-Sudais_64kbps",
	"الشيخ ماهر المعيقلي":             "Maher_AlMuaiqly_64kbps",
	"الشيخ محمد صديق المنشاوي (مجود)": "Minshawy_Mujawwad_64kbps",
	"الشيخ سعود الشريم":               "Saood_ash-Shuraym_64kbps",
	"الشيخ مشاري العفاسي":             "Alafasy_64kbps",
	"الشيخ محمود خليل الحصري":         "Husary_64kbps",
	"الشيخ عبدالله الحذيفي":           "Hudhaify_64kbps",
	"الشيخ أبو بكر الشاطري":           "Abu_Bakr_Ash-Shaatree_128kbps",
	"الشيخ محمود علي البنا":           "mahmoud_ali_al_banna_32kbps",
}

// VerseCount returns the number of ayat in a surah.
func VerseCount(surah int) (int, error) {
	if surah < 1 || surah > SurahCount {
		return 0, fmt.Errorf("surah number out of range: %d", surah)
	}
	return verseCounts[surah-1], nil
}

// SurahName returns the Arabic name of a surah.
func SurahName(surah int) (string, error) {
	if surah < 1 || surah > SurahCount {
		return "", fmt.Errorf("surah number out of range: %d", surah)
	}
	return surahNames[surah-1], nil
}

// ReciterID resolves a reciter display name or raw identifier to the
// everyayah.com folder id. Raw identifiers pass through untouched so
// scripts can skip the Arabic names.
func ReciterID(name string) (string, error) {
	if id, ok := reciters[name]; ok {
		return id, nil
	}
	for _, id := range reciters {
		if id == name {
			return id, nil
		}
	}
	return "", fmt.Errorf("unknown reciter: %q", name)
}

// Reciters returns the known reciter display names.
func Reciters() []string {
	names := make([]string, 0, len(reciters))
	for name := range reciters {
		names = append(names, name)
	}
	return names
}
