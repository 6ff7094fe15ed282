// Command fatctl mounts a FAT32 disk image and runs a single operation
// against it: listing a directory, printing a file, or copying a file out.
// It exists for manual poking at a real image from a shell, not as a
// supported integration surface.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/soypat/fat32"
	"github.com/soypat/fat32/blockdev"
	"github.com/spf13/cobra"
)

const defaultBlockSize = 512

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "fatctl",
		Short: "Inspect and extract files from a FAT32 disk image",
	}
	root.AddCommand(newMountCmd(), newLsCmd(), newCatCmd(), newCpCmd())
	return root
}

func openImage(path string) (*fat.FS, *os.File, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, nil, err
	}
	dev := blockdev.NewFile(f, defaultBlockSize)
	fsys := new(fat.FS)
	err = fsys.MountWithConfig(fat.MountConfig{
		Device:    dev,
		BlockSize: defaultBlockSize,
		Perm:      fat.ModeRW,
	})
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return fsys, f, nil
}

func newMountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mount IMAGE",
		Short: "Mount an image and print its volume summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fsys, f, err := openImage(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			fmt.Println(fsys.String())
			return nil
		},
	}
}

func newLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls IMAGE PATH",
		Short: "List a directory's contents",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fsys, f, err := openImage(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			var dp fat.Dir
			if err := fsys.OpenDir(&dp, args[1]); err != nil {
				return err
			}
			return dp.ForEachFile(func(fi *fat.FileInfo) error {
				fmt.Println(fi.String())
				return nil
			})
		},
	}
}

func newCatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cat IMAGE PATH",
		Short: "Print a file's contents to stdout",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fsys, f, err := openImage(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			var fp fat.File
			if err := fsys.OpenFile(&fp, args[1], fat.ModeRead); err != nil {
				return err
			}
			_, err = io.Copy(os.Stdout, &fp)
			return err
		},
	}
}

func newCpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cp IMAGE SRC_PATH DST_FILE",
		Short: "Copy a file out of the image onto the local filesystem",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			fsys, f, err := openImage(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			var fp fat.File
			if err := fsys.OpenFile(&fp, args[1], fat.ModeRead); err != nil {
				return err
			}
			out, err := os.Create(args[2])
			if err != nil {
				return err
			}
			defer out.Close()
			_, err = io.Copy(out, &fp)
			return err
		},
	}
}
