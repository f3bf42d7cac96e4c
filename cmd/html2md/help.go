package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: html2md <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert an HTML page or file to Markdown")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'html2md help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: html2md convert <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert an HTML document to Markdown.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    URL, HTML file path, or - for stdin")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file (- or empty = stdout)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -t, --timeout <dur>       Fetch timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w, "      --user-agent <s>      User-Agent header for outbound requests")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Image Relocation:")
	fmt.Fprintln(w, "      --images              Relocate images to the object store")
	fmt.Fprintln(w, "      --keep-unresolved     Keep original references for images that fail")
	fmt.Fprintln(w, "      --endpoint <s>        Object store endpoint (host:port)")
	fmt.Fprintln(w, "      --access-key <s>      Access key (or HTML2MD_ACCESS_KEY)")
	fmt.Fprintln(w, "      --secret-key <s>      Secret key (or HTML2MD_SECRET_KEY)")
	fmt.Fprintln(w, "      --bucket <s>          Bucket for relocated images")
	fmt.Fprintln(w, "      --url-prefix <s>      Public URL prefix for relocated images")
	fmt.Fprintln(w, "      --no-tls              Connect without TLS")
	fmt.Fprintln(w, "      --ensure-bucket       Create the bucket if it does not exist")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show per-stage detail")
}

// runHelp prints help for a specific command.
func runHelp(args []string, deps *Dependencies) {
	if len(args) == 0 {
		printUsage(deps.Stdout)
		return
	}

	switch args[0] {
	case "convert":
		printConvertUsage(deps.Stdout)
	case "version":
		fmt.Fprintln(deps.Stdout, "Usage: html2md version")
		fmt.Fprintln(deps.Stdout)
		fmt.Fprintln(deps.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(deps.Stdout, "Usage: html2md help [command]")
		fmt.Fprintln(deps.Stdout)
		fmt.Fprintln(deps.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(deps.Stderr, "Unknown command: %s\n", args[0])
		printUsage(deps.Stderr)
	}
}
