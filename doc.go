// Package html2md converts HTML documents to Markdown, optionally
// relocating embedded images to an S3-compatible object store.
//
// # Quick Start
//
// Create a converter and convert a string or a URL:
//
//	conv, err := html2md.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	markdown, err := conv.ConvertContent(ctx, "<h1>Hello</h1><p>World</p>")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(markdown)
//
// Use Convert with an Input for the full result, which also carries the
// image link map:
//
//	result, err := conv.Convert(ctx, html2md.Input{URL: "https://example.com/post"})
//
// # Conversion Pipeline
//
// The conversion process follows these stages:
//
//  1. Fetch (URL input only; raw content skips straight to decoding)
//  2. Character encoding resolution (WHATWG sniffing, UTF-8 best-effort fallback)
//  3. HTML sanitization (scripts, event handlers, javascript: URLs stripped)
//  4. Parsing into the document model (goquery / x/net/html)
//  5. Image extraction and relocation (optional, see below)
//  6. Markdown rendering (CommonMark rules)
//
// Each stage either succeeds or fails with a classified sentinel error
// (ErrFetch, ErrEncoding, ErrParse, ErrImageFetch, ErrUpload); a failed
// conversion returns no partial Markdown.
//
// # Image Relocation
//
// With image processing enabled, embedded images — inline data: URIs and
// remote references alike — are fingerprinted with SHA-256, uploaded to the
// configured bucket under content-addressed keys, and the Markdown output
// references the stored copies. Identical content uploads once per run, and
// keys already present in the store are never re-uploaded:
//
//	conv, err := html2md.NewConverter(
//	    html2md.WithImageProcessing(html2md.BlobConfig{
//	        Endpoint:  "minio.internal:9000",
//	        AccessKey: os.Getenv("HTML2MD_ACCESS_KEY"),
//	        SecretKey: os.Getenv("HTML2MD_SECRET_KEY"),
//	        Bucket:    "page-images",
//	    }),
//	)
//
// An incomplete blob configuration fails NewConverter immediately. By
// default a conversion aborts when any image cannot be retrieved or
// stored; WithKeepUnresolvedImages opts into leaving such references
// untouched instead.
//
// # Concurrency
//
// A Converter is safe for concurrent use: every conversion owns its
// document model, fingerprint cache, and link map, and the blob store is
// the only shared collaborator. ConverterPool bounds the number of
// simultaneous conversions for batch workloads:
//
//	pool := html2md.NewConverterPool(4, opts...)
//	conv, err := pool.Acquire()
//	defer pool.Release(conv)
package html2md
