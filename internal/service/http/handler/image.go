package handler

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/reusedev/media-hub/internal/consts"
	"github.com/reusedev/media-hub/internal/modules/cache"
	"github.com/reusedev/media-hub/internal/modules/dao"
	"github.com/reusedev/media-hub/internal/modules/ingest"
	"github.com/reusedev/media-hub/internal/modules/logs"
	"github.com/reusedev/media-hub/internal/modules/queue"
	"github.com/reusedev/media-hub/internal/modules/storage"
	"github.com/reusedev/media-hub/internal/modules/upload"
	"github.com/reusedev/media-hub/internal/service/http/handler/request"
	hresponse "github.com/reusedev/media-hub/internal/service/http/handler/response"
	"github.com/reusedev/media-hub/internal/service/http/response"
	"github.com/reusedev/media-hub/tools"
)

var (
	Pipe    *ingest.Pipeline
	URLSign storage.URLProvider
)

func Init(pipeline *ingest.Pipeline, sign storage.URLProvider) {
	Pipe = pipeline
	URLSign = sign
}

func UploadImage(c *gin.Context) {
	form := request.UploadImage{}
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, response.ParamError)
		return
	}
	if err := form.Valid(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": err.Error()})
		return
	}
	raw, ok := rawFromForm(c, &form)
	if !ok {
		return
	}
	req := ingest.Request{
		ProductId: form.ProductId,
		Device:    consts.DeviceClass(form.Device),
		ImageType: consts.ImageType(form.ImageType),
		SortOrder: form.SortOrder,
		Level:     consts.CompressionLevel(form.Level),
	}

	if form.Variants {
		records, err := Pipe.IngestVariants(raw, req)
		if err != nil {
			logs.Logger.Err(err).Str("filename", raw.Filename).Msg("variant upload failed")
			c.JSON(http.StatusUnprocessableEntity, response.FromProcessingError(err))
			return
		}
		for _, record := range records {
			if err := dao.CreateVariant(record); err != nil {
				logs.Logger.Err(err).Msg("create variant record failed")
				c.JSON(http.StatusInternalServerError, response.InternalError)
				return
			}
		}
		c.JSON(http.StatusOK, hresponse.UploadVariants{Variants: records})
		return
	}

	ingestFn := Pipe.Ingest
	if form.ToTarget {
		ingestFn = Pipe.IngestToTargetSize
	}
	record, err := ingestFn(raw, req)
	if err != nil {
		logs.Logger.Err(err).Str("filename", raw.Filename).Msg("upload failed")
		c.JSON(http.StatusUnprocessableEntity, response.FromProcessingError(err))
		return
	}
	if err := dao.CreateVariant(record); err != nil {
		logs.Logger.Err(err).Msg("create variant record failed")
		c.JSON(http.StatusInternalServerError, response.InternalError)
		return
	}
	c.JSON(http.StatusOK, hresponse.UploadImage{Variant: record})
}

func rawFromForm(c *gin.Context, form *request.UploadImage) (upload.RawUpload, bool) {
	if form.File != nil {
		f, err := form.File.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, response.ParamError)
			return upload.RawUpload{}, false
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.ParamError)
			return upload.RawUpload{}, false
		}
		return upload.FromBytes(form.File.Filename, form.File.Header.Get("Content-Type"), data), true
	}
	data, fName, err := tools.GetOnlineImage(form.URL)
	if err != nil {
		logs.Logger.Err(err).Str("url", form.URL).Msg("fetch online image failed")
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": "failed to fetch image from url"})
		return upload.RawUpload{}, false
	}
	return upload.FromBytes(fName, tools.DetectImageType(data).MIME(), data), true
}

func BatchUpload(c *gin.Context) {
	form := request.BatchUpload{}
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, response.ParamError)
		return
	}
	if err := form.Valid(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": err.Error()})
		return
	}
	multipartForm, err := c.MultipartForm()
	if err != nil || len(multipartForm.File["files"]) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": "must fill files"})
		return
	}
	raws := make([]upload.RawUpload, 0, len(multipartForm.File["files"]))
	for _, header := range multipartForm.File["files"] {
		f, err := header.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, response.ParamError)
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			c.JSON(http.StatusBadRequest, response.ParamError)
			return
		}
		raws = append(raws, upload.FromBytes(header.Filename, header.Header.Get("Content-Type"), data))
	}
	req := ingest.Request{
		ProductId: form.ProductId,
		Device:    consts.DeviceClass(form.Device),
		ImageType: consts.ImageType(form.ImageType),
		SortOrder: form.SortOrder,
		Level:     consts.CompressionLevel(form.Level),
	}

	if form.Async {
		select {
		case queue.BatchTaskQueue <- &BatchIngestTask{Raws: raws, Req: req}:
			c.JSON(http.StatusAccepted, gin.H{"code": 0, "message": "batch accepted", "total_files": len(raws)})
		default:
			c.JSON(http.StatusServiceUnavailable, gin.H{"code": 10003, "message": "batch queue full"})
		}
		return
	}

	outcome := Pipe.IngestMany(raws, req)
	for _, record := range outcome.Results {
		if err := dao.CreateVariant(record); err != nil {
			logs.Logger.Err(err).Msg("create variant record failed")
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"results":  outcome.Results,
		"failures": outcome.Failures,
		"summary":  outcome.Summary(),
	})
}

func AnalyzeImage(c *gin.Context) {
	form := request.AnalyzeImage{}
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, response.ParamError)
		return
	}
	if err := form.Valid(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": err.Error()})
		return
	}
	f, err := form.File.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ParamError)
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ParamError)
		return
	}
	raw := upload.FromBytes(form.File.Filename, form.File.Header.Get("Content-Type"), data)
	report, err := Pipe.Analyze(raw, consts.DeviceClass(form.Device))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, response.FromProcessingError(err))
		return
	}
	c.JSON(http.StatusOK, report)
}

func GetImage(c *gin.Context) {
	form := request.GetImage{}
	if err := c.ShouldBindQuery(&form); err != nil {
		c.JSON(http.StatusBadRequest, response.ParamError)
		return
	}
	if err := form.Valid(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": err.Error()})
		return
	}
	form.FullWithDefault()
	if cached, err := cache.URLCacheManager().GetValue(form.CacheKey()); err == nil && cached != "" {
		if resp, err := hresponse.UnmarshalGetImage(cached); err == nil {
			c.JSON(http.StatusOK, resp)
			return
		}
	}
	variant, err := dao.VariantById(form.ID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": 10004, "message": "image not found"})
		return
	}
	path := variant.Path
	if form.Mirror {
		path = variant.MirrorPath
	}
	expire, _ := time.ParseDuration(form.Expire)
	url, err := URLSign.URL(path, expire)
	if err != nil {
		logs.Logger.Err(err).Str("path", path).Msg("sign url failed")
		c.JSON(http.StatusInternalServerError, response.InternalError)
		return
	}
	resp := hresponse.GetImage{Path: path, URL: url}
	if marshaled, err := resp.Marsh(); err == nil {
		if err := cache.URLCacheManager().SetWithExpiration(form.CacheKey(), marshaled, expire/2); err != nil {
			logs.Logger.Warn().Err(err).Msg("cache url failed")
		}
	}
	c.JSON(http.StatusOK, resp)
}

func ListProductImages(c *gin.Context) {
	type uri struct {
		ProductId int `uri:"id" binding:"required,gt=0"`
	}
	var u uri
	if err := c.ShouldBindUri(&u); err != nil {
		c.JSON(http.StatusBadRequest, response.ParamError)
		return
	}
	variants, err := dao.VariantsByProduct(u.ProductId)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.InternalError)
		return
	}
	c.JSON(http.StatusOK, gin.H{"variants": variants})
}

func SortImage(c *gin.Context) {
	form := request.SortImage{}
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, response.ParamError)
		return
	}
	if err := form.Valid(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": err.Error()})
		return
	}
	if err := dao.UpdateSortOrder(form.ID, form.SortOrder); err != nil {
		c.JSON(http.StatusInternalServerError, response.InternalError)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "ok"})
}

// DeleteImage removes the record first, then both blob copies best-effort.
// A concurrent ingest for the same logical slot may race this; accepted.
func DeleteImage(c *gin.Context) {
	form := request.DeleteImage{}
	if err := c.ShouldBindQuery(&form); err != nil {
		c.JSON(http.StatusBadRequest, response.ParamError)
		return
	}
	if err := form.Valid(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": err.Error()})
		return
	}
	variant, err := dao.VariantById(form.ID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": 10004, "message": "image not found"})
		return
	}
	if err := dao.SoftDeleteVariant(form.ID); err != nil {
		c.JSON(http.StatusInternalServerError, response.InternalError)
		return
	}
	if err := Pipe.Delete(variant.Path, variant.MirrorPath); err != nil {
		logs.Logger.Warn().Err(err).Str("path", variant.Path).Msg("blob delete failed")
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "ok"})
}
