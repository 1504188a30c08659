package ali

import (
	"bytes"
	"context"
	"time"

	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss"
	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss/credentials"
	"github.com/reusedev/media-hub/config"
)

var (
	OssClient *ossClient
)

type ossClient struct {
	client     *oss.Client
	endpoint   string
	bucketName string
}

func InitOSS(config config.AliOss) {
	credential := credentials.NewStaticCredentialsProvider(config.AccessKeyId, config.AccessKeySecret, "")
	cfg := oss.LoadDefaultConfig().
		WithCredentialsProvider(credential).
		WithEndpoint(config.Endpoint).WithRegion(config.Region)
	client := oss.NewClient(cfg)
	if client == nil {
		panic("create oss client failed")
	}
	OssClient = &ossClient{
		client:     client,
		endpoint:   config.Endpoint,
		bucketName: config.Bucket,
	}
}

func (o *ossClient) Put(path string, data []byte) error {
	request := &oss.PutObjectRequest{
		Bucket: oss.Ptr(o.bucketName),
		Key:    oss.Ptr(path),
		Body:   bytes.NewReader(data),
	}
	_, err := o.client.PutObject(context.TODO(), request)
	return err
}

func (o *ossClient) Delete(path string) error {
	request := &oss.DeleteObjectRequest{
		Bucket: oss.Ptr(o.bucketName),
		Key:    oss.Ptr(path),
	}
	_, err := o.client.DeleteObject(context.TODO(), request)
	return err
}

func (o *ossClient) Exists(path string) (bool, error) {
	return o.client.IsObjectExist(context.TODO(), o.bucketName, path)
}

func (o *ossClient) URL(key string, expire time.Duration) (string, error) {
	ret, err := o.client.Presign(context.TODO(), &oss.GetObjectRequest{Bucket: oss.Ptr(o.bucketName), Key: oss.Ptr(key)}, oss.PresignExpires(expire))
	if err != nil {
		return "", err
	}
	return ret.URL, nil
}
