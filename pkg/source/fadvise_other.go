// pkg/source/fadvise_other.go

//go:build !linux

package source

import "os"

func adviseRandom(f *os.File) {}
