package bible

// Books lists the 66 books in canonical order.
var Books = []Book{
	{ID: "GEN", Name: "Genesis", Chapters: 50},
	{ID: "EXO", Name: "Exodus", Chapters: 40},
	{ID: "LEV", Name: "Leviticus", Chapters: 27},
	{ID: "NUM", Name: "Numbers", Chapters: 36},
	{ID: "DEU", Name: "Deuteronomy", Chapters: 34},
	{ID: "JOS", Name: "Joshua", Chapters: 24},
	{ID: "JDG", Name: "Judges", Chapters: 21},
	{ID: "RUT", Name: "Ruth", Chapters: 4},
	{ID: "1SA", Name: "1 Samuel", Chapters: 31},
	{ID: "2SA", Name: "2 Samuel", Chapters: 24},
	{ID: "1KI", Name: "1 Kings", Chapters: 22},
	{ID: "2KI", Name: "2 Kings", Chapters: 25},
	{ID: "1CH", Name: "1 Chronicles", Chapters: 29},
	{ID: "2CH", Name: "2 Chronicles", Chapters: 36},
	{ID: "EZR", Name: "Ezra", Chapters: 10},
	{ID: "NEH", Name: "Nehemiah", Chapters: 13},
	{ID: "EST", Name: "Esther", Chapters: 10},
	{ID: "JOB", Name: "Job", Chapters: 42},
	{ID: "PSA", Name: "Psalms", Chapters: 150},
	{ID: "PRO", Name: "Proverbs", Chapters: 31},
	{ID: "ECC", Name: "Ecclesiastes", Chapters: 12},
	{ID: "SNG", Name: "Song of Solomon", Chapters: 8},
	{ID: "ISA", Name: "Isaiah", Chapters: 66},
	{ID: "JER", Name: "Jeremiah", Chapters: 52},
	{ID: "LAM", Name: "Lamentations", Chapters: 5},
	{ID: "EZK", Name: "Ezekiel", Chapters: 48},
	{ID: "DAN", Name: "Daniel", Chapters: 12},
	{ID: "HOS", Name: "Hosea", Chapters: 14},
	{ID: "JOL", Name: "Joel", Chapters: 3},
	{ID: "AMO", Name: "Amos", Chapters: 9},
	{ID: "OBA", Name: "Obadiah", Chapters: 1},
	{ID: "JON", Name: "Jonah", Chapters: 4},
	{ID: "MIC", Name: "Micah", Chapters: 7},
	{ID: "NAH", Name: "Nahum", Chapters: 3},
	{ID: "HAB", Name: "Habakkuk", Chapters: 3},
	{ID: "ZEP", Name: "Zephaniah", Chapters: 3},
	{ID: "HAG", Name: "Haggai", Chapters: 2},
	{ID: "ZEC", Name: "Zechariah", Chapters: 14},
	{ID: "MAL", Name: "Malachi", Chapters: 4},
	{ID: "MAT", Name: "Matthew", Chapters: 28},
	{ID: "MRK", Name: "Mark", Chapters: 16},
	{ID: "LUK", Name: "Luke", Chapters: 24},
	{ID: "JHN", Name: "John", Chapters: 21},
	{ID: "ACT", Name: "Acts", Chapters: 28},
	{ID: "ROM", Name: "Romans", Chapters: 16},
	{ID: "1CO", Name: "1 Corinthians", Chapters: 16},
	{ID: "2CO", Name: "2 Corinthians", Chapters: 13},
	{ID: "GAL", Name: "Galatians", Chapters: 6},
	{ID: "EPH", Name: "Ephesians", Chapters: 6},
	{ID: "PHP", Name: "Philippians", Chapters: 4},
	{ID: "COL", Name: "Colossians", Chapters: 4},
	{ID: "1TH", Name: "1 Thessalonians", Chapters: 5},
	{ID: "2TH", Name: "2 Thessalonians", Chapters: 3},
	{ID: "1TI", Name: "1 Timothy", Chapters: 6},
	{ID: "2TI", Name: "2 Timothy", Chapters: 4},
	{ID: "TIT", Name: "Titus", Chapters: 3},
	{ID: "PHM", Name: "Philemon", Chapters: 1},
	{ID: "HEB", Name: "Hebrews", Chapters: 13},
	{ID: "JAS", Name: "James", Chapters: 5},
	{ID: "1PE", Name: "1 Peter", Chapters: 5},
	{ID: "2PE", Name: "2 Peter", Chapters: 3},
	{ID: "1JN", Name: "1 John", Chapters: 5},
	{ID: "2JN", Name: "2 John", Chapters: 1},
	{ID: "3JN", Name: "3 John", Chapters: 1},
	{ID: "JUD", Name: "Jude", Chapters: 1},
	{ID: "REV", Name: "Revelation", Chapters: 22},
}
