package sentiment

// Entry is the score a lexicon word contributes to a text.
type Entry struct {
	Polarity     float64
	Subjectivity float64
}

// Lexicon maps lower-cased words to their scores.
type Lexicon map[string]Entry

// DefaultLexicon is tuned for financial headlines. Values follow the
// [-1,1] polarity and [0,1] subjectivity scale of general-purpose lexicons.
var DefaultLexicon = Lexicon{
	// positive
	"beat":         {0.5, 0.4},
	"beats":        {0.5, 0.4},
	"boost":        {0.4, 0.4},
	"boosts":       {0.4, 0.4},
	"bullish":      {0.6, 0.7},
	"excellent":    {1.0, 1.0},
	"exceeds":      {0.5, 0.4},
	"expands":      {0.3, 0.3},
	"favorable":    {0.5, 0.6},
	"favourable":   {0.5, 0.6},
	"gain":         {0.4, 0.3},
	"gains":        {0.4, 0.3},
	"good":         {0.7, 0.6},
	"great":        {0.8, 0.75},
	"growth":       {0.3, 0.2},
	"high":         {0.16, 0.54},
	"improve":      {0.4, 0.4},
	"improved":     {0.4, 0.4},
	"improves":     {0.4, 0.4},
	"innovative":   {0.5, 0.6},
	"jump":         {0.4, 0.4},
	"jumps":        {0.4, 0.4},
	"optimistic":   {0.5, 0.8},
	"outperform":   {0.5, 0.5},
	"outperforms":  {0.5, 0.5},
	"positive":     {0.45, 0.6},
	"profit":       {0.3, 0.2},
	"profitable":   {0.5, 0.4},
	"rally":        {0.5, 0.5},
	"rallies":      {0.5, 0.5},
	"record":       {0.3, 0.3},
	"rise":         {0.3, 0.3},
	"rises":        {0.3, 0.3},
	"robust":       {0.5, 0.5},
	"soar":         {0.6, 0.5},
	"soars":        {0.6, 0.5},
	"strong":       {0.43, 0.73},
	"stronger":     {0.45, 0.7},
	"success":      {0.6, 0.5},
	"successful":   {0.75, 0.95},
	"surge":        {0.5, 0.5},
	"surges":       {0.5, 0.5},
	"upbeat":       {0.5, 0.7},
	"upgrade":      {0.5, 0.4},
	"upgraded":     {0.5, 0.4},
	"win":          {0.8, 0.4},
	"wins":         {0.8, 0.4},
	"breakthrough": {0.6, 0.5},
	"approval":     {0.4, 0.3},
	"approved":     {0.4, 0.3},

	// negative
	"bad":           {-0.7, 0.67},
	"bankruptcy":    {-0.8, 0.5},
	"bearish":       {-0.6, 0.7},
	"collapse":      {-0.7, 0.6},
	"concern":       {-0.3, 0.5},
	"concerns":      {-0.3, 0.5},
	"crash":         {-0.8, 0.6},
	"cut":           {-0.3, 0.3},
	"cuts":          {-0.3, 0.3},
	"decline":       {-0.4, 0.3},
	"declines":      {-0.4, 0.3},
	"disappointing": {-0.6, 0.7},
	"downgrade":     {-0.5, 0.4},
	"downgraded":    {-0.5, 0.4},
	"drop":          {-0.4, 0.3},
	"drops":         {-0.4, 0.3},
	"fall":          {-0.3, 0.3},
	"falls":         {-0.3, 0.3},
	"fears":         {-0.5, 0.7},
	"fraud":         {-0.9, 0.6},
	"layoffs":       {-0.5, 0.4},
	"loss":          {-0.4, 0.3},
	"losses":        {-0.4, 0.3},
	"miss":          {-0.4, 0.4},
	"misses":        {-0.4, 0.4},
	"negative":      {-0.3, 0.4},
	"plunge":        {-0.7, 0.6},
	"plunges":       {-0.7, 0.6},
	"poor":          {-0.4, 0.6},
	"recall":        {-0.4, 0.3},
	"risk":          {-0.2, 0.4},
	"risks":         {-0.2, 0.4},
	"scandal":       {-0.7, 0.6},
	"slump":         {-0.5, 0.5},
	"slumps":        {-0.5, 0.5},
	"tumble":        {-0.6, 0.5},
	"tumbles":       {-0.6, 0.5},
	"uncertainty":   {-0.3, 0.6},
	"warning":       {-0.4, 0.4},
	"warns":         {-0.4, 0.4},
	"weak":          {-0.38, 0.63},
	"weaker":        {-0.4, 0.6},
	"worst":         {-1.0, 1.0},
	"worse":         {-0.4, 0.6},
}

// DefaultIntensifiers multiply the polarity of the next scored word.
var DefaultIntensifiers = map[string]float64{
	"very":          1.3,
	"extremely":     1.5,
	"highly":        1.3,
	"really":        1.2,
	"significantly": 1.4,
	"sharply":       1.4,
	"strongly":      1.3,
	"slightly":      0.5,
	"somewhat":      0.7,
}

// DefaultNegators flip a scored word appearing within two tokens after them.
var DefaultNegators = map[string]bool{
	"not":     true,
	"no":      true,
	"never":   true,
	"without": true,
	"nor":     true,
	"neither": true,
	"cannot":  true,
}
