package dispatch

// Command describes one dispatchable command for discovery surfaces.
type Command struct {
	Name        string `json:"name"`
	Usage       string `json:"usage"`
	Description string `json:"description"`
	Mutating    bool   `json:"mutating"`
}

// Commands returns the full command surface. The set is closed: anything
// not listed here is rejected by Dispatch.
func Commands() []Command {
	return []Command{
		{Name: "list", Usage: "list [-r] [-a] [path] [pattern]", Description: "Enumerate a directory"},
		{Name: "cd", Usage: "cd <path>", Description: "Change the current directory"},
		{Name: "pwd", Usage: "pwd", Description: "Print the current directory"},
		{Name: "back", Usage: "back", Description: "Return to the previous directory"},
		{Name: "forward", Usage: "forward", Description: "Advance in navigation history"},
		{Name: "up", Usage: "up", Description: "Move to the parent directory"},
		{Name: "history", Usage: "history", Description: "Show navigation history"},
		{Name: "info", Usage: "info [-L] [path]", Description: "Show entry metadata or directory summary"},
		{Name: "search", Usage: "search <pattern> [-r] [path]", Description: "Find entries by name"},
		{Name: "diskinfo", Usage: "diskinfo [path]", Description: "Show filesystem capacity and usage"},
		{Name: "du", Usage: "du [path]", Description: "Sum file sizes under a directory"},
		{Name: "mime", Usage: "mime <path>", Description: "Detect a file's MIME type"},
		{Name: "mkdir", Usage: "mkdir <path> [-p]", Description: "Create a directory", Mutating: true},
		{Name: "mkfile", Usage: "mkfile <path> [content]", Description: "Create a file", Mutating: true},
		{Name: "delete", Usage: "delete <path> [-r]", Description: "Remove an entry", Mutating: true},
		{Name: "copy", Usage: "copy <src> <dst> [-r] [-f] [-p] [-o]", Description: "Copy an entry", Mutating: true},
		{Name: "move", Usage: "move <src> <dst>", Description: "Move an entry", Mutating: true},
		{Name: "rename", Usage: "rename <path> <name>", Description: "Rename an entry in place", Mutating: true},
		{Name: "chmod", Usage: "chmod <mode> <path>", Description: "Change permission bits", Mutating: true},
		{Name: "symlink", Usage: "symlink <target> <link>", Description: "Create a symbolic link", Mutating: true},
		{Name: "readlink", Usage: "readlink <path>", Description: "Read a symlink target"},
		{Name: "zip", Usage: "zip <src> <dst>", Description: "Archive a directory", Mutating: true},
		{Name: "unzip", Usage: "unzip <archive> <dst>", Description: "Extract an archive", Mutating: true},
		{Name: "batchcopy", Usage: "batchcopy <src dst>... [-overwrite] [-failfast]", Description: "Copy several pairs with per-pair outcomes", Mutating: true},
	}
}
