package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/rubiojr/bindconv/ast"
	"github.com/rubiojr/bindconv/conversion"
)

// convertFile converts one compilation unit.
func convertFile(bc *conversion.BridgeConverter, path string) (*conversion.Results, error) {
	mod, err := ast.ParseFile(path)
	if err != nil {
		return nil, err
	}
	res, err := bc.Convert(mod)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return res, nil
}

// renderUnit writes the converted source of one unit. With several units
// each one is preceded by a header naming its file.
func renderUnit(w io.Writer, bc *conversion.BridgeConverter, path string, header bool) error {
	res, err := convertFile(bc, path)
	if err != nil {
		return err
	}
	if header {
		fmt.Fprintf(w, "// === %s ===\n", path)
	}
	_, err = io.WriteString(w, ast.PrintItems(res.Items))
	return err
}

// convertUnits converts every file and writes the results in argument
// order. Units are independent, so with jobs > 1 they are converted in
// parallel and their output buffered. All failures are reported together.
func convertUnits(bc *conversion.BridgeConverter, files []string, jobs int, w io.Writer) error {
	if jobs < 1 {
		jobs = 1
	}
	header := len(files) > 1
	errs := make([]error, len(files))

	if jobs == 1 {
		for i, f := range files {
			errs[i] = renderUnit(w, bc, f, header)
		}
		return errors.Join(errs...)
	}

	type asyncResult struct {
		buf  bytes.Buffer
		done chan struct{}
	}
	async := make([]asyncResult, len(files))
	for i := range async {
		async[i].done = make(chan struct{})
	}
	work := make(chan int, len(files))
	for i := range files {
		work <- i
	}
	close(work)
	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range work {
				errs[i] = renderUnit(&async[i].buf, bc, files[i], header)
				close(async[i].done)
			}
		}()
	}
	for i := range async {
		<-async[i].done
		if _, err := w.Write(async[i].buf.Bytes()); err != nil {
			return err
		}
	}
	wg.Wait()
	return errors.Join(errs...)
}
