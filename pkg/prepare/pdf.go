package prepare

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"

	"github.com/nodewee/ocr2text/pkg/constants"
	"github.com/nodewee/ocr2text/pkg/utils"
)

// countPDFPages opens the document and returns its page count.
// The parser panics on some malformed files, so panics are reported as corrupt input.
func countPDFPages(data []byte) (count int, err error) {
	defer func() {
		if r := recover(); r != nil {
			count = 0
			err = utils.NewCorruptInputError(
				fmt.Sprintf("%s: malformed PDF", constants.ErrCorruptInput), fmt.Errorf("%v", r))
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, utils.NewCorruptInputError(fmt.Sprintf("%s: cannot open PDF", constants.ErrCorruptInput), err)
	}

	count = reader.NumPage()
	if count <= 0 {
		return 0, utils.NewCorruptInputError(fmt.Sprintf("%s: PDF has no pages", constants.ErrCorruptInput), nil)
	}
	return count, nil
}
