package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// blobFlags holds object-store flags for image relocation.
type blobFlags struct {
	endpoint     string
	accessKey    string
	secretKey    string
	bucket       string
	noTLS        bool
	urlPrefix    string
	ensureBucket bool
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common         commonFlags
	output         string
	timeout        string
	userAgent      string
	images         bool
	keepUnresolved bool
	blob           blobFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show per-stage detail")
}

// addBlobFlags adds object-store flags to a FlagSet.
func addBlobFlags(fs *flag.FlagSet, f *blobFlags) {
	fs.StringVar(&f.endpoint, "endpoint", "", "object store endpoint (host:port)")
	fs.StringVar(&f.accessKey, "access-key", "", "object store access key")
	fs.StringVar(&f.secretKey, "secret-key", "", "object store secret key")
	fs.StringVar(&f.bucket, "bucket", "", "bucket for relocated images")
	fs.BoolVar(&f.noTLS, "no-tls", false, "connect to the object store without TLS")
	fs.StringVar(&f.urlPrefix, "url-prefix", "", "public URL prefix for relocated images")
	fs.BoolVar(&f.ensureBucket, "ensure-bucket", false, "create the bucket if it does not exist")
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	f := &convertFlags{}

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file (- or empty = stdout)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "fetch timeout (e.g., 30s, 2m)")
	fs.StringVar(&f.userAgent, "user-agent", "", "User-Agent header for outbound requests")

	// Image relocation flags
	fs.BoolVar(&f.images, "images", false, "relocate images to the object store")
	fs.BoolVar(&f.keepUnresolved, "keep-unresolved", false, "keep original references for images that fail")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addBlobFlags(fs, &f.blob)

	fs.Usage = func() { printConvertUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
