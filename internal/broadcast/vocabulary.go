package broadcast

// PhoneticSystem maps the digits 0-9 to language-specific code words. Each
// system is pinned to exactly one language.
type PhoneticSystem struct {
	Name     string
	Language Language
	Digits   [10]string
}

// Pattern is a named ordered sequence of group lengths for phonetic-numeric
// payloads.
type Pattern struct {
	Name   string
	Groups []int
}

// WordCategory names one of the parallel morse word lists.
type WordCategory string

const (
	CategorySubjects  WordCategory = "SUBJECTS"
	CategoryVerbs     WordCategory = "VERBS"
	CategoryObjects   WordCategory = "OBJECTS"
	CategoryLocations WordCategory = "LOCATIONS"
	CategoryModifiers WordCategory = "MODIFIERS"
)

// Vocabulary holds the static tables every generator draws from. Pure data.
type Vocabulary struct {
	Frequencies     []int
	Intervals       []int
	PhoneticSystems []PhoneticSystem
	Prefixes        []string
	Suffixes        []string
	Patterns        []Pattern
	NumericShapes   [][]int
	MorseCode       map[rune]string
	Words           map[WordCategory][]string
	Templates       [][]WordCategory
}

// DefaultVocabulary returns the standard broadcast tables.
func DefaultVocabulary() *Vocabulary {
	return &Vocabulary{
		Frequencies: []int{4625, 4780, 5473, 6998, 7887},
		Intervals:   []int{23, 37, 73, 89, 197},
		PhoneticSystems: []PhoneticSystem{
			{
				Name:     "ALPHA",
				Language: LanguageEnglish,
				Digits:   [10]string{"ANNA", "BELLA", "CESAR", "DAVID", "EVA", "FELIX", "GUSTAV", "HENRI", "IVAN", "JOHN"},
			},
			{
				Name:     "BETA",
				Language: LanguageGerman,
				Digits:   [10]string{"NULL", "EINS", "ZWEI", "DREI", "VIER", "FÜNF", "SECHS", "SIEBEN", "ACHT", "NEUN"},
			},
			{
				Name:     "GAMMA",
				Language: LanguageItalian,
				Digits:   [10]string{"NULLA", "UNO", "DEUX", "TRES", "QUATRE", "CINQUE", "SEIS", "SEPT", "OCT", "NOVE"},
			},
			{
				Name:     "PILOT",
				Language: LanguageEnglish,
				Digits:   [10]string{"ZERO", "ONE", "TWO", "TREE", "FOWER", "FIFE", "SIX", "SEVEN", "EIGHT", "NINER"},
			},
			{
				Name:     "RUSSIAN",
				Language: LanguageRussian,
				Digits:   [10]string{"НОЛЬ", "ОДИН", "ДВА", "ТРИ", "ЧЕТЫРЕ", "ПЯТЬ", "ШЕСТЬ", "СЕМЬ", "ВОСЕМЬ", "ДЕВЯТЬ"},
			},
			{
				Name:     "CHINESE",
				Language: LanguageChinese,
				Digits:   [10]string{"零", "一", "二", "三", "四", "五", "六", "七", "八", "九"},
			},
		},
		Prefixes: []string{
			"ZELENYY KRISTALL",
			"SKRYTAYA NOCH",
			"TUNGUSKA",
			"ELEKTRICHESKIY VETER",
			"LEVIATHAN",
			"ISKHOD",
			"LUNNAYA STANTSIYA",
			"KOSMICHESKAYA TISHINA",
			"ZVONOK IZ GLUBIN",
			"RADIOFON",
			"AKUSTICHESKAYA TEN'",
			"POLYARNYY SIGNAL",
			"KHIMICHESKIY SLED",
			"KONTROL'NAYA TOCHKA",
			"SVETLYY KOD",
			"NOCHNOY MAYAK",
			"ISKUSSTVENNYY VZGLYAD",
			"KRISTALICHESKIY POTOK",
			"DZERKAL'NYY EFEKT",
			"天狼星",
			"黑洞信号",
			"宇宙灯塔",
			"银河之声",
			"远星探测",
			"ЗВЕЗДНЫЙ МАЯК",
			"ТАЙНАЯ ОРБИТА",
			"ГЛУБИННЫЙ ЭФИР",
			"КОСМИЧЕСКИЙ ШТОРМ",
			"ПРОЗРАЧНЫЙ ПАТТЕРН",
		},
		Suffixes: []string{
			"TISHINA",
			"RADIOMAYAK",
			"PECHALNYY ANGEL",
			"VOID",
			"KONTAKT",
			"ZVUKOVAYA TEN'",
			"POLYARNAYA SHIROTA",
			"MEKHANICHESKIY OTZVUK",
			"KODOVAYA TEN'",
			"ZONA MOLCHANIYA",
			"VYKHODNOY POTOK",
			"KOZMIKA",
			"SIGMA",
			"DELTA",
			"ANTENNA",
			"KONTROL'NAYA ZONA",
			"NOCHNOY SIGNAL",
			"EHO DAL'NOSTI",
			"SVETOVOY KONTUR",
			"静默之域",
			"深空回声",
			"终极信标",
			"未知频率",
			"无限回响",
			"ТЕНЬ РЕЗОНАНСА",
			"ГЛУБИНЫ ПРОСТРАНСТВА",
			"СЕКРЕТНЫЙ МАЯК",
			"ЧЕРНОЕ ЗЕРКАЛО",
			"ПУСТОТА СИГНАЛА",
		},
		Patterns: []Pattern{
			{Name: "PRIPYAT", Groups: []int{3, 7, 3, 7, 2, 3}},
			{Name: "DUGA", Groups: []int{5, 5, 9, 9}},
			{Name: "ZVENO", Groups: []int{1, 1, 2, 3, 5, 8}},
			{Name: "CHAOS", Groups: []int{2, 3, 5, 7}},
		},
		NumericShapes: [][]int{
			{5, 5, 2, 3, 2, 3, 2, 5, 5},
			{5, 3, 5, 3, 3, 3, 3, 3, 5, 3, 5},
			{3, 5, 2, 1, 2, 2, 1, 2, 5, 3},
			{3, 5, 3, 5, 5, 5, 5, 5, 3, 5, 3},
			{1, 1, 2, 3, 5, 8, 13},
		},
		MorseCode: map[rune]string{
			'A': ".-", 'B': "-...", 'C': "-.-.", 'D': "-..", 'E': ".",
			'F': "..-.", 'G': "--.", 'H': "....", 'I': "..", 'J': ".---",
			'K': "-.-", 'L': ".-..", 'M': "--", 'N': "-.", 'O': "---",
			'P': ".--.", 'Q': "--.-", 'R': ".-.", 'S': "...", 'T': "-",
			'U': "..-", 'V': "...-", 'W': ".--", 'X': "-..-", 'Y': "-.--",
			'Z': "--..",
			'0': "-----", '1': ".----", '2': "..---", '3': "...--",
			'4': "....-", '5': ".....", '6': "-....", '7': "--...",
			'8': "---..", '9': "----.",
		},
		Words: map[WordCategory][]string{
			CategorySubjects: {
				"LIGHTHOUSE", "OBSERVER", "SENTINEL", "OPERATOR", "WATCHER",
				"SLEEPER", "SIGNAL", "BEACON", "ANOMALY", "SHADOW",
				"GUARDIAN", "LISTENER", "MESSENGER", "DRIFTER", "OUTPOST",
				"PROWLER", "VIGIL", "SHADE", "MONITOR", "LOOKOUT",
			},
			CategoryVerbs: {
				"AWAITS", "WATCHES", "LISTENS", "SIGNALS", "TRANSMITS",
				"ECHOES", "FADES", "EMERGES", "PERSISTS", "RESONATES",
				"WHISPERS", "CARRIES", "DISSOLVES", "FALLS", "RIPPLES",
				"ASCENDS", "RETREATS", "PIERCES", "PROCLAIMS", "WAVES",
			},
			CategoryObjects: {
				"FREQUENCY", "DARKNESS", "STATIC", "SILENCE", "VOID",
				"SIGNAL", "PATTERN", "CIPHER", "PULSE", "BROADCAST",
				"TRANSMISSION", "ECHO", "WAVE", "MESSAGE", "CODE",
				"SHADOW", "SPECTRUM", "HORIZON", "DISTURBANCE", "WHIRL",
			},
			CategoryLocations: {
				"BEYOND", "BENEATH", "WITHIN", "BELOW", "ABOVE",
				"NOWHERE", "EVERYWHERE", "BETWEEN", "AROUND", "THROUGH",
				"OUTSIDE", "INSIDE", "ACROSS", "UNDER", "WITHIN REACH",
				"IN THE DEPTHS", "AT THE EDGE", "NEARBY", "FAR AWAY", "AT MIDPOINT",
			},
			CategoryModifiers: {
				"ENDLESS", "ETERNAL", "SILENT", "HIDDEN", "UNKNOWN",
				"DISTANT", "ANCIENT", "SECRET", "COSMIC", "FORGOTTEN",
				"VEILED", "BOUNDLESS", "OBSCURED", "UNSEEN", "MYSTERIOUS",
				"ENIGMATIC", "LOST", "MURMURING", "WANDERING", "FADING",
			},
		},
		Templates: [][]WordCategory{
			{CategorySubjects, CategoryVerbs, CategoryObjects},
			{CategoryModifiers, CategoryObjects, CategoryVerbs},
			{CategorySubjects, CategoryVerbs, CategoryLocations},
			{CategoryModifiers, CategorySubjects, CategoryVerbs, CategoryObjects},
			{CategorySubjects, CategoryVerbs, CategoryModifiers, CategoryObjects},
			{CategoryModifiers, CategoryObjects, CategoryLocations, CategoryVerbs},
		},
	}
}
