package references

import "errors"

var (
	// ErrArticleNotFound 文章不存在
	ErrArticleNotFound = errors.New("article not found")

	// ErrReferenceNotFound 参考文件记录不存在
	ErrReferenceNotFound = errors.New("reference not found")

	// ErrForbidden 当前用户无权操作该文章的参考文件
	ErrForbidden = errors.New("not allowed to manage references of this article")

	// ErrIntegrity 元数据记录存在但存储介质中找不到对应文件
	// 属于服务端数据完整性故障，不是客户端错误
	ErrIntegrity = errors.New("reference bytes missing from storage")
)
