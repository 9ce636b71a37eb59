package opt

import (
	"unsafe"

	"golang.org/x/sys/cpu"
)

// CacheLineSize is used in structure padding to keep independently-owned
// hot fields on separate cache lines. It is derived from
// golang.org/x/sys/cpu for the target architecture.
const CacheLineSize = unsafe.Sizeof(cpu.CacheLinePad{})
