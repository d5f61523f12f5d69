package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagInt
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string   // --output
	Short    string   // -o (empty if none)
	Type     flagType // completion type
	Desc     string   // help text
	Values   []string // for enum flags
	FileGlob []string // for file flags, e.g. ["yaml", "yml"]
}

// completionMeta holds completion-specific metadata for flags.
// Flag names, types, and descriptions come from the FlagSet.
type completionMeta struct {
	Values     []string // enum values
	Extensions []string // file extensions without the dot
	IsDir      bool     // directory completion
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	"completion": {Values: []string{string(ShellBash), string(ShellZsh), string(ShellFish)}},

	"config":   {Extensions: []string{"yaml", "yml"}},
	"chapters": {Extensions: []string{"yaml", "yml"}},
	"template": {Extensions: []string{"html", "xml"}},

	"output":     {IsDir: true},
	"asset-path": {IsDir: true},
	"code-dir":   {IsDir: true},
}

// completionFlags extracts flag definitions from the command's FlagSet,
// enriched with flagCompletionMeta.
func completionFlags() []flagDef {
	var flags []flagDef

	newFlagSet(&cliFlags{}).VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int":
			fd.Type = flagInt
		default:
			fd.Type = flagString
		}

		if meta, ok := flagCompletionMeta[f.Name]; ok {
			switch {
			case len(meta.Values) > 0:
				fd.Type = flagEnum
				fd.Values = meta.Values
			case len(meta.Extensions) > 0:
				fd.Type = flagFile
				fd.FileGlob = meta.Extensions
			case meta.IsDir:
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// GenerateCompletion writes a shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	flags := completionFlags()
	var script string
	switch shell {
	case ShellBash:
		script = bashCompletion(flags)
	case ShellZsh:
		script = zshCompletion(flags)
	case ShellFish:
		script = fishCompletion(flags)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish)", ErrUnsupportedShell, shell)
	}
	_, err := io.WriteString(w, script)
	return err
}

// names returns "--long" and "-s" for a flag.
func (fd flagDef) names() []string {
	names := []string{"--" + fd.Long}
	if fd.Short != "" {
		names = append(names, "-"+fd.Short)
	}
	return names
}

func bashCompletion(flags []flagDef) string {
	var b strings.Builder
	var all []string

	b.WriteString("# bash completion for bookfmt\n")
	b.WriteString("_bookfmt() {\n")
	b.WriteString("    local cur prev\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    case \"$prev\" in\n")
	for _, fd := range flags {
		all = append(all, fd.names()...)
		var action string
		switch fd.Type {
		case flagBool:
			continue
		case flagEnum:
			action = fmt.Sprintf("COMPREPLY=( $(compgen -W %q -- \"$cur\") )", strings.Join(fd.Values, " "))
		case flagFile:
			action = fmt.Sprintf("COMPREPLY=( $(compgen -f -X '!*.@(%s)' -- \"$cur\") )", strings.Join(fd.FileGlob, "|"))
		case flagDir:
			action = "COMPREPLY=( $(compgen -d -- \"$cur\") )"
		default:
			action = "COMPREPLY=()"
		}
		fmt.Fprintf(&b, "        %s)\n            %s\n            return ;;\n", strings.Join(fd.names(), "|"), action)
	}
	b.WriteString("    esac\n")
	b.WriteString("    if [[ \"$cur\" == -* ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=( $(compgen -W %q -- \"$cur\") )\n", strings.Join(all, " "))
	b.WriteString("    fi\n")
	b.WriteString("}\n")
	b.WriteString("shopt -s extglob\n")
	b.WriteString("complete -F _bookfmt bookfmt\n")
	return b.String()
}

// zshEscape escapes text for use inside a single-quoted _arguments spec.
var zshEscape = strings.NewReplacer("'", `'\''`, "[", `\[`, "]", `\]`, ":", `\:`)

func zshCompletion(flags []flagDef) string {
	var b strings.Builder

	b.WriteString("#compdef bookfmt\n")
	b.WriteString("_bookfmt() {\n")
	b.WriteString("    _arguments -s \\\n")
	for _, fd := range flags {
		var action string
		switch fd.Type {
		case flagBool:
		case flagEnum:
			action = ":" + fd.Long + ":(" + strings.Join(fd.Values, " ") + ")"
		case flagFile:
			action = ":file:_files -g \"*.(" + strings.Join(fd.FileGlob, "|") + ")\""
		case flagDir:
			action = ":directory:_files -/"
		default:
			action = ":" + fd.Long + ":"
		}
		for _, name := range fd.names() {
			fmt.Fprintf(&b, "        '%s[%s]%s' \\\n", name, zshEscape.Replace(fd.Desc), action)
		}
	}
	b.WriteString("        '*:filter:'\n")
	b.WriteString("}\n")
	b.WriteString("compdef _bookfmt bookfmt\n")
	return b.String()
}

// fishEscape escapes text for use inside a single-quoted fish string.
var fishEscape = strings.NewReplacer(`\`, `\\`, "'", `\'`)

func fishCompletion(flags []flagDef) string {
	var b strings.Builder

	b.WriteString("# fish completion for bookfmt\n")
	for _, fd := range flags {
		fmt.Fprintf(&b, "complete -c bookfmt -l %s", fd.Long)
		if fd.Short != "" {
			fmt.Fprintf(&b, " -s %s", fd.Short)
		}
		fmt.Fprintf(&b, " -d '%s'", fishEscape.Replace(fd.Desc))
		switch fd.Type {
		case flagBool:
		case flagEnum:
			fmt.Fprintf(&b, " -x -a '%s'", strings.Join(fd.Values, " "))
		case flagFile:
			b.WriteString(" -r -F")
		case flagDir:
			b.WriteString(" -x -a '(__fish_complete_directories)'")
		default:
			b.WriteString(" -x")
		}
		b.WriteString("\n")
	}
	return b.String()
}
