package bookfmt

// Word-count thresholds for classifying chapters.
const (
	StubWords     = 50
	CompleteWords = 2000
)

// Classification is a chapter's progress bucket.
type Classification int

const (
	// ClassPart is a part header: no section label, not counted.
	ClassPart Classification = iota
	// ClassStub has fewer than StubWords words.
	ClassStub
	// ClassDraft has fewer than CompleteWords words.
	ClassDraft
	// ClassComplete counts toward the word total.
	ClassComplete
)

func (c Classification) String() string {
	switch c {
	case ClassPart:
		return "part"
	case ClassStub:
		return "stub"
	case ClassDraft:
		return "draft"
	case ClassComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Classify buckets a document by section label and word count.
func Classify(section string, words int) Classification {
	switch {
	case section == "":
		return ClassPart
	case words < StubWords:
		return ClassStub
	case words < CompleteWords:
		return ClassDraft
	default:
		return ClassComplete
	}
}

// Stats accumulates book progress across a batch. It is not safe for
// concurrent use; aggregate per-worker values with Merge.
type Stats struct {
	Chapters int // documents with a section label
	Empty    int // stubs and drafts
	Words    int // words in complete chapters
}

// Add folds one converted chapter into the totals and returns its
// classification.
func (s *Stats) Add(r *Result) Classification {
	c := Classify(r.Section, r.Words)
	switch c {
	case ClassStub, ClassDraft:
		s.Chapters++
		s.Empty++
	case ClassComplete:
		s.Chapters++
		s.Words += r.Words
	}
	return c
}

// Merge adds other's totals to s.
func (s *Stats) Merge(other Stats) {
	s.Chapters += other.Chapters
	s.Empty += other.Empty
	s.Words += other.Words
}

// Estimate projects the finished book's length.
type Estimate struct {
	Words     int // words written in complete chapters
	Estimated int // Words plus the average complete chapter per empty one
	Percent   int
}

// Completion estimates progress. It reports false when no chapter is
// complete, since there is no average to extrapolate from.
func (s Stats) Completion() (Estimate, bool) {
	complete := s.Chapters - s.Empty
	if complete <= 0 {
		return Estimate{}, false
	}

	average := s.Words / complete
	estimated := s.Words + s.Empty*average
	if estimated <= 0 {
		return Estimate{}, false
	}

	return Estimate{
		Words:     s.Words,
		Estimated: estimated,
		Percent:   s.Words * 100 / estimated,
	}, true
}
