package handler

import (
	"os"
	"path/filepath"
	"strings"

	"Nexus/internal/config"
	"Nexus/pkg/back"
	"Nexus/pkg/util"
	"Nexus/pkg/xerr"
	"Nexus/pkg/zlog"

	"github.com/gin-gonic/gin"
)

type UploadHandler struct{}

func NewUploadHandler() *UploadHandler {
	return &UploadHandler{}
}

type uploadItem struct {
	FileName string `json:"fileName"`
	Success  bool   `json:"success"`
	FileUrl  string `json:"fileUrl,omitempty"`
	Message  string `json:"message,omitempty"`
}

// Upload 多文件上传。单个文件失败不影响其余文件，逐个返回结果
func (h *UploadHandler) Upload(c *gin.Context) {
	conf := config.GetConfig().UploadConfig
	dir := conf.Dir
	if dir == "" {
		dir = "uploads"
	}
	baseURL := conf.BaseURL
	if baseURL == "" {
		baseURL = "/uploads"
	}
	maxSize := conf.MaxSizeMB
	if maxSize <= 0 {
		maxSize = 20
	}

	form, err := c.MultipartForm()
	if err != nil {
		zlog.Error(err.Error())
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}
	files := form.File["file"]
	if len(files) == 0 {
		back.Error(c, xerr.BadRequest, "没有待上传的文件")
		return
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		zlog.Error(err.Error())
		back.Error(c, xerr.InternalServerError, xerr.ErrServerError.Message)
		return
	}

	results := make([]uploadItem, 0, len(files))
	for _, f := range files {
		item := uploadItem{FileName: f.Filename}
		if f.Size > maxSize*1024*1024 {
			item.Message = "文件超过大小限制"
			results = append(results, item)
			continue
		}

		// 文件名加 uuid 前缀避免覆盖，只保留基础名防止路径穿越
		name := util.GenerateShortUUID() + "_" + filepath.Base(f.Filename)
		dst := filepath.Join(dir, name)
		if err := c.SaveUploadedFile(f, dst); err != nil {
			zlog.Error(err.Error())
			item.Message = "保存失败"
			results = append(results, item)
			continue
		}

		item.Success = true
		item.FileUrl = strings.TrimSuffix(baseURL, "/") + "/" + name
		results = append(results, item)
	}

	back.Result(c, results, nil)
}
