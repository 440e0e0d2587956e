package mime

import (
	"fmt"
	"io"

	"github.com/gabriel-vasile/mimetype"
)

// DetectedType 内容嗅探结果
type DetectedType struct {
	MIME      string // 如 application/pdf
	Extension string // 含点号，如 .pdf
}

// SniffContentType 从流头部嗅探真实内容类型并回退到起始位置
// 扩展名来自文件内容而非客户端声明的文件名
func SniffContentType(stream io.ReadSeeker) (*DetectedType, error) {
	mtype, err := mimetype.DetectReader(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to read stream for mime sniffing: %w", err)
	}

	if _, err := stream.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to seek stream back to start after sniffing: %w", err)
	}

	return &DetectedType{
		MIME:      mtype.String(),
		Extension: mtype.Extension(),
	}, nil
}
