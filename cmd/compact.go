package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/rokybeast/passlock/internal/storage"
)

// Compact compacts the side-store to reclaim unused space
func Compact(ctx context.Context, opts Options) {
	s := Setup(opts)
	defer s.Close()

	dbPath := storage.SideStorePath(s.Passlock.Path())

	// Get file size before
	info, err := os.Stat(dbPath)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println("Nothing to compact")
			return
		}
		HandleError(err)
	}
	sizeBefore := info.Size()

	if err := s.Passlock.Compact(); err != nil {
		HandleError(err)
	}

	// Get file size after
	info, err = os.Stat(dbPath)
	if err != nil {
		HandleError(err)
	}
	sizeAfter := info.Size()

	fmt.Printf("Compacted: %s -> %s\n", formatSize(sizeBefore), formatSize(sizeAfter))
}
