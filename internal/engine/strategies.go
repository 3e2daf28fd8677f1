package engine

// The hyper-search factors the strategy space: the six primary classes are
// permuted exhaustively while the four rescue classes keep a fixed tail, as
// their relative order only matters once every primary queue is empty.
var (
	strategyPrefix = []Class{ClassA, ClassB, ClassC, ClassD, ClassAPrime, ClassBPrime}
	strategySuffix = []Class{ClassADouble, ClassBDouble, ClassF, ClassE}
)

// Strategies returns the full strategy enumeration of the hyper-search: every
// permutation of the primary classes, in lexicographic order, each followed
// by the fixed suffix. len = 6! = 720.
func Strategies() []Strategy {
	perms := permutations(strategyPrefix)
	out := make([]Strategy, 0, len(perms))
	for _, p := range perms {
		s := make(Strategy, 0, NumClasses)
		s = append(s, p...)
		s = append(s, strategySuffix...)
		out = append(out, s)
	}
	return out
}

// permutations generates all orderings of classes in lexicographic order
// relative to the input sequence.
func permutations(classes []Class) [][]Class {
	var out [][]Class
	n := len(classes)
	var rec func(prefix []Class, rest []Class)
	rec = func(prefix []Class, rest []Class) {
		if len(rest) == 0 {
			out = append(out, append([]Class(nil), prefix...))
			return
		}
		for i := 0; i < len(rest); i++ {
			next := make([]Class, 0, len(rest)-1)
			next = append(next, rest[:i]...)
			next = append(next, rest[i+1:]...)
			rec(append(prefix, rest[i]), next)
		}
	}
	rec(make([]Class, 0, n), classes)
	return out
}

// chunkStrategies splits the enumeration into contiguous chunks of equal
// ceiling size, one per worker. The final chunk may be shorter; with more
// workers than strategies the tail workers get none.
func chunkStrategies(strategies []Strategy, workers int) [][]Strategy {
	per := (len(strategies) + workers - 1) / workers
	var chunks [][]Strategy
	for i := 0; i < len(strategies); i += per {
		end := i + per
		if end > len(strategies) {
			end = len(strategies)
		}
		chunks = append(chunks, strategies[i:end])
	}
	return chunks
}
