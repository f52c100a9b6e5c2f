// pkg/object/file_other.go

//go:build !linux

package object

import "os"

func adviseRandom(f *os.File) {}
