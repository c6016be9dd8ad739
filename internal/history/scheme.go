package history

var (
	bRuns = []byte("runs") // invTime + 0x00 + runHash -> RunRecord json
	bMeta = []byte("meta") // "last" -> key in bRuns
)

var keyLast = []byte("last")
