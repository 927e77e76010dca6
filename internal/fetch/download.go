package fetch

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// DownloadPDF streams the PDF at url to destPath. The bytes land in a hidden
// staging file in the destination directory first and are renamed into place
// only once the stream completes, so an interrupted download never leaves a
// truncated PDF under a citation key's name.
func (c *Client) DownloadPDF(ctx context.Context, url, destPath string) error {
	resp, err := c.get(ctx, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// Some sources answer a PDF link with an HTML error page and status 200.
	br := bufio.NewReader(resp.Body)
	head, _ := br.Peek(4)
	if !bytes.HasPrefix(head, []byte("%PDF")) {
		return fmt.Errorf("%w: %s did not return a PDF", ErrInvalidResponse, url)
	}

	staging := filepath.Join(filepath.Dir(destPath), "."+uuid.NewString()+".part")

	f, err := os.Create(staging)
	if err != nil {
		return fmt.Errorf("creating staging file: %w", err)
	}

	if _, err := io.Copy(f, br); err != nil {
		f.Close()
		os.Remove(staging)
		return fmt.Errorf("downloading %s: %w", url, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(staging)
		return fmt.Errorf("closing staging file: %w", err)
	}

	if err := os.Rename(staging, destPath); err != nil {
		os.Remove(staging)
		return fmt.Errorf("moving download into place: %w", err)
	}
	return nil
}
