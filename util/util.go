package util

import (
	"io/fs"
	"path/filepath"
	"strings"

	"golang.org/x/exp/constraints"
)

// GatherAllMidiPaths walks path and collects every .mid/.midi file. A maxNum of
// zero means no limit.
func GatherAllMidiPaths(path string, maxNum int) ([]string, error) {
	var res []string
	walk := func(s string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			if strings.HasSuffix(s, ".mid") || strings.HasSuffix(s, ".midi") {
				if maxNum == 0 || len(res) < maxNum {
					res = append(res, s)
				}
			}
		}
		return nil
	}
	if err := filepath.WalkDir(path, walk); err != nil {
		return nil, err
	}
	return res, nil
}

// GCD is always non-negative. GCD(0, 0) is 0.
func GCD[A constraints.Integer](a A, b A) A {
	for b != 0 {
		a, b = b, a%b
	}
	if a < 0 {
		return -a
	}
	return a
}

func LCM[A constraints.Integer](a A, b A) A {
	if a == 0 || b == 0 {
		return 0
	}
	res := a / GCD(a, b) * b
	if res < 0 {
		return -res
	}
	return res
}

func Min[A constraints.Integer](num1 A, num2 A) A {
	if num1 > num2 {
		return num2
	}
	return num1
}

func Max[A constraints.Integer](num1 A, num2 A) A {
	if num1 < num2 {
		return num2
	}
	return num1
}
