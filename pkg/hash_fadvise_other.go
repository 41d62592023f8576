//go:build !linux

package mmqa

import (
	"github.com/go-git/go-billy/v5"
)

func adviseSequential(billy.File) error { return nil }
