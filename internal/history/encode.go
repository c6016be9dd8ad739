package history

import (
	"bytes"
	"encoding/binary"
)

// key = invTime(8) + 0x00 + runHash, so a forward cursor walks newest first
func makeTimeKey(unixNano int64, runHash string) []byte {
	buf := make([]byte, 8, 8+1+len(runHash))
	binary.BigEndian.PutUint64(buf, ^uint64(unixNano))
	buf = append(buf, 0x00)
	buf = append(buf, runHash...)
	return buf
}

func unixNanoFromTimeKey(k []byte) (int64, bool) {
	if len(k) < 9 || k[8] != 0x00 {
		return 0, false
	}
	return int64(^binary.BigEndian.Uint64(k[:8])), true
}

func hashFromTimeKey(k []byte) string {
	if len(k) < 9 {
		return ""
	}
	i := bytes.IndexByte(k[8:], 0x00)
	if i < 0 {
		return ""
	}
	return string(k[8+i+1:])
}
