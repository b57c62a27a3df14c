package index

import "strings"

// platformClassNames is the curated catalog of platform classes offered
// by completion and import fixing when no richer classpath metadata is
// available. java.lang classes are listed too: they don't need imports,
// but they still show up in not-yet-imported completion filtering and
// package browsing.
var platformClassNames = []string{
	"java.lang.Boolean",
	"java.lang.Byte",
	"java.lang.CharSequence",
	"java.lang.Character",
	"java.lang.Class",
	"java.lang.Comparable",
	"java.lang.Double",
	"java.lang.Enum",
	"java.lang.Exception",
	"java.lang.Float",
	"java.lang.IllegalArgumentException",
	"java.lang.IllegalStateException",
	"java.lang.Integer",
	"java.lang.Iterable",
	"java.lang.Long",
	"java.lang.Math",
	"java.lang.Number",
	"java.lang.Object",
	"java.lang.Runnable",
	"java.lang.RuntimeException",
	"java.lang.Short",
	"java.lang.String",
	"java.lang.StringBuilder",
	"java.lang.System",
	"java.lang.Thread",
	"java.lang.Throwable",
	"java.io.BufferedReader",
	"java.io.BufferedWriter",
	"java.io.File",
	"java.io.FileReader",
	"java.io.FileWriter",
	"java.io.IOException",
	"java.io.InputStream",
	"java.io.InputStreamReader",
	"java.io.OutputStream",
	"java.io.PrintStream",
	"java.io.PrintWriter",
	"java.io.Reader",
	"java.io.Writer",
	"java.math.BigDecimal",
	"java.math.BigInteger",
	"java.nio.file.Files",
	"java.nio.file.Path",
	"java.nio.file.Paths",
	"java.text.SimpleDateFormat",
	"java.time.Duration",
	"java.time.Instant",
	"java.time.LocalDate",
	"java.time.LocalDateTime",
	"java.time.LocalTime",
	"java.time.ZonedDateTime",
	"java.util.ArrayDeque",
	"java.util.ArrayList",
	"java.util.Arrays",
	"java.util.Collection",
	"java.util.Collections",
	"java.util.Comparator",
	"java.util.Date",
	"java.util.Deque",
	"java.util.HashMap",
	"java.util.HashSet",
	"java.util.Iterator",
	"java.util.LinkedHashMap",
	"java.util.LinkedHashSet",
	"java.util.LinkedList",
	"java.util.List",
	"java.util.Map",
	"java.util.NoSuchElementException",
	"java.util.Objects",
	"java.util.Optional",
	"java.util.PriorityQueue",
	"java.util.Queue",
	"java.util.Random",
	"java.util.Scanner",
	"java.util.Set",
	"java.util.SortedMap",
	"java.util.SortedSet",
	"java.util.TreeMap",
	"java.util.TreeSet",
	"java.util.UUID",
	"java.util.concurrent.CompletableFuture",
	"java.util.concurrent.ConcurrentHashMap",
	"java.util.concurrent.ExecutorService",
	"java.util.concurrent.Executors",
	"java.util.concurrent.TimeUnit",
	"java.util.function.BiFunction",
	"java.util.function.Consumer",
	"java.util.function.Function",
	"java.util.function.Predicate",
	"java.util.function.Supplier",
	"java.util.regex.Matcher",
	"java.util.regex.Pattern",
	"java.util.stream.Collectors",
	"java.util.stream.IntStream",
	"java.util.stream.Stream",
}

// PlatformClasses returns the curated platform catalog as rows ready
// for the store.
func PlatformClasses() []Class {
	out := make([]Class, 0, len(platformClassNames))
	for _, qualified := range platformClassNames {
		i := strings.LastIndexByte(qualified, '.')
		out = append(out, Class{
			QualifiedName: qualified,
			SimpleName:    qualified[i+1:],
			PackageName:   qualified[:i],
			Public:        true,
		})
	}
	return out
}
