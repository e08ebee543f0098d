//go:build !unix

package check

import "os"

func accessRW(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	return f.Close()
}
