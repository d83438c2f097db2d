// Command wadtool is a small inspection and mutation CLI for WAD archives.
// It is a thin wrapper over the wad package, not a replacement for it -
// the container engine is the library; this is just enough front end to
// exercise it by hand.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/doomkit/wad"
)

const usage = `wadtool - WAD archive CLI tool

Usage:
  wadtool ls <wad_file>                        List entries in a WAD archive
  wadtool cat <wad_file> <name>                Display the payload of an entry
  wadtool info <wad_file>                      Display header and directory info
  wadtool add <wad_file> <name> <data_file>     Append a new entry
  wadtool rm <wad_file> <index>                 Delete entry at index (reclaims space)
  wadtool rename <wad_file> <index> <new_name>  Rename entry at index
  wadtool extract <wad_file> <out_file> <name>...  Copy named entries into a new archive
  wadtool fsck <wad_file>                       Validate container invariants
  wadtool help                                  Show this help message
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "ls":
		err = requireArgs(3, listEntries)
	case "cat":
		err = requireArgs(4, catEntry)
	case "info":
		err = requireArgs(3, showInfo)
	case "add":
		err = requireArgs(5, addEntry)
	case "rm":
		err = requireArgs(4, removeEntry)
	case "rename":
		err = requireArgs(5, renameEntry)
	case "extract":
		err = requireArgs(5, extractEntries)
	case "fsck":
		err = requireArgs(3, fsck)
	case "help":
		fmt.Print(usage)
		return
	default:
		fmt.Printf("Error: Unknown command %q\n", os.Args[1])
		fmt.Print(usage)
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

// requireArgs checks that at least n args (including argv[0] and the
// subcommand) are present before dispatching to fn.
func requireArgs(n int, fn func() error) error {
	if len(os.Args) < n {
		fmt.Print(usage)
		os.Exit(1)
	}
	return fn()
}

func listEntries() error {
	c, err := wad.OpenFileContainer(os.Args[2])
	if err != nil {
		return fmt.Errorf("failed to open %q: %w", os.Args[2], err)
	}
	defer c.Close()

	for i, e := range c.Entries() {
		kind := "lump"
		if e.IsMarker() {
			kind = "marker"
		}
		fmt.Printf("%4d  %-8s  %8d bytes  @%-10d  %s\n", i, e.Name, e.Size, e.Offset, kind)
	}
	return nil
}

func catEntry() error {
	c, err := wad.OpenFileContainer(os.Args[2])
	if err != nil {
		return fmt.Errorf("failed to open %q: %w", os.Args[2], err)
	}
	defer c.Close()

	data, err := c.ReadPayloadByName(os.Args[3])
	if err != nil {
		return fmt.Errorf("failed to read %q: %w", os.Args[3], err)
	}
	_, err = os.Stdout.Write(data)
	return err
}

func showInfo() error {
	c, err := wad.OpenFileContainer(os.Args[2])
	if err != nil {
		return fmt.Errorf("failed to open %q: %w", os.Args[2], err)
	}
	defer c.Close()

	fmt.Println("WAD Archive Information")
	fmt.Println("=======================")
	fmt.Printf("Entries:   %d\n", c.EntryCount())

	markers, lumps := 0, 0
	for _, e := range c.Entries() {
		if e.IsMarker() {
			markers++
		} else {
			lumps++
		}
	}
	fmt.Printf("Lumps:     %d\n", lumps)
	fmt.Printf("Markers:   %d\n", markers)
	return nil
}

func addEntry() error {
	c, err := wad.OpenFileContainer(os.Args[2])
	if err != nil {
		return fmt.Errorf("failed to open %q: %w", os.Args[2], err)
	}
	defer c.Close()

	data, err := os.ReadFile(os.Args[4])
	if err != nil {
		return fmt.Errorf("failed to read %q: %w", os.Args[4], err)
	}

	_, err = c.AddData(os.Args[3], data)
	return err
}

func removeEntry() error {
	c, err := wad.OpenFileContainer(os.Args[2])
	if err != nil {
		return fmt.Errorf("failed to open %q: %w", os.Args[2], err)
	}
	defer c.Close()

	idx, err := strconv.Atoi(os.Args[3])
	if err != nil {
		return fmt.Errorf("invalid index %q: %w", os.Args[3], err)
	}

	_, err = c.Delete(idx)
	return err
}

func renameEntry() error {
	c, err := wad.OpenFileContainer(os.Args[2])
	if err != nil {
		return fmt.Errorf("failed to open %q: %w", os.Args[2], err)
	}
	defer c.Close()

	idx, err := strconv.Atoi(os.Args[3])
	if err != nil {
		return fmt.Errorf("invalid index %q: %w", os.Args[3], err)
	}

	return c.Rename(idx, os.Args[4])
}

func extractEntries() error {
	c, err := wad.OpenFileContainer(os.Args[2])
	if err != nil {
		return fmt.Errorf("failed to open %q: %w", os.Args[2], err)
	}
	defer c.Close()

	names := os.Args[4:]
	entries := make([]wad.EntryRecord, 0, len(names))
	for _, name := range names {
		_, e, ok := c.FindFirst(name)
		if !ok {
			return fmt.Errorf("no entry named %q", name)
		}
		entries = append(entries, e)
	}

	return wad.Extract(os.Args[3], c, entries...)
}

func fsck() error {
	c, err := wad.OpenFileContainer(os.Args[2])
	if err != nil {
		return fmt.Errorf("failed to open %q: %w", os.Args[2], err)
	}
	defer c.Close()

	problems := c.Validate()
	if len(problems) == 0 {
		fmt.Println("ok")
		return nil
	}
	for _, p := range problems {
		fmt.Println(p)
	}
	os.Exit(1)
	return nil
}
