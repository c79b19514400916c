package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/lukhio/axml/apk"
	"github.com/lukhio/axml/arsc"
	"github.com/lukhio/axml/binxml"
)

func main() {
	var (
		apkFile     = flag.String("apk", "", "Path to an APK; decodes its AndroidManifest.xml")
		xmlFile     = flag.String("xml", "", "Path to a compiled binary XML file")
		resFile     = flag.String("res", "", "Path to a compiled resources.arsc file")
		outFile     = flag.String("o", "", "Write output to a file instead of stdout")
		flat        = flag.Bool("flat", false, "Render on one line without indentation")
		interactive = flag.Bool("i", false, "Interactive tree browser")
		verbose     = flag.Bool("v", false, "Log chunk framing while decoding")
	)
	flag.Parse()

	inputs := 0
	for _, f := range []string{*apkFile, *xmlFile, *resFile} {
		if f != "" {
			inputs++
		}
	}
	if inputs != 1 {
		fmt.Fprintln(os.Stderr, "Usage: axml -apk <file.apk> [-o out.xml] [-flat]")
		fmt.Fprintln(os.Stderr, "       axml -xml <AndroidManifest.xml>")
		fmt.Fprintln(os.Stderr, "       axml -res <resources.arsc>")
		fmt.Fprintln(os.Stderr, "       axml -apk <file.apk> -i  (interactive mode)")
		os.Exit(1)
	}

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		binxml.SetLogger(logger)
	}

	if *interactive {
		if *resFile != "" {
			fmt.Fprintln(os.Stderr, "Error: interactive mode browses XML documents, not resource tables")
			os.Exit(1)
		}
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(*apkFile, *xmlFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*apkFile, *xmlFile, *resFile, *outFile, *flat); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(apkFile, xmlFile, resFile, outFile string, flat bool) error {
	out := io.Writer(os.Stdout)
	if outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}

	if resFile != "" {
		data, err := os.ReadFile(resFile)
		if err != nil {
			return fmt.Errorf("read file: %w", err)
		}
		table, err := arsc.Parse(data)
		if err != nil {
			return fmt.Errorf("parse table: %w", err)
		}
		return printTable(out, resFile, table)
	}

	data, err := loadDocument(apkFile, xmlFile)
	if err != nil {
		return err
	}
	doc, err := binxml.Decode(data)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	opts := binxml.SerializeOptions{Indent: "    "}
	if flat {
		opts.Indent = ""
	}
	if err := doc.WriteXML(out, opts); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if flat {
		// WriteXML only adds the trailing newline in indent mode.
		fmt.Fprintln(out)
	}
	return nil
}

func loadDocument(apkFile, xmlFile string) ([]byte, error) {
	if apkFile != "" {
		data, err := apk.Manifest(apkFile)
		if err != nil {
			return nil, fmt.Errorf("extract manifest: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(xmlFile)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return data, nil
}

func printTable(out io.Writer, path string, table *arsc.Table) error {
	fmt.Fprintf(out, "Resource table: %s\n", path)
	fmt.Fprintf(out, "Global strings: %d\n", table.Strings.Size())
	fmt.Fprintf(out, "Packages: %d\n", len(table.Packages))
	for _, pkg := range table.Packages {
		fmt.Fprintf(out, "\nPackage 0x%02x %s\n", pkg.ID, pkg.Name)
		fmt.Fprintf(out, "  Resource types: %d\n", pkg.TypeNames.Size())
		fmt.Fprintf(out, "  Entry names: %d\n", pkg.KeyNames.Size())
		fmt.Fprintf(out, "  Type chunks: %d (%d specs)\n", pkg.TypeChunks, pkg.SpecChunks)
	}
	return nil
}
