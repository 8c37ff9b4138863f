// Package services - Service cho domain EmailTemplate.
package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basesvc "email_marketing/internal/api/base/service"
	models "email_marketing/internal/api/template/models"
	"email_marketing/internal/common"
	"email_marketing/internal/global"
	"email_marketing/internal/mailer"
	"email_marketing/internal/utility"
)

// EmailTemplateService quản lý template email. Danh sách biến của template
// được trích tự động từ nội dung HTML mỗi khi tạo hoặc sửa nội dung.
type EmailTemplateService struct {
	*basesvc.BaseServiceMongoImpl[models.EmailTemplate]
}

// NewEmailTemplateService tạo mới EmailTemplateService
func NewEmailTemplateService() (*EmailTemplateService, error) {
	templateCollection, exist := global.RegistryCollections.Get(global.MongoCollectionNames.EmailTemplates)
	if !exist {
		return nil, fmt.Errorf("failed to get email_templates collection: %v", common.ErrNotFound)
	}
	return &EmailTemplateService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.EmailTemplate](templateCollection),
	}, nil
}

// InsertOne tạo template, tự trích danh sách biến từ htmlContent
func (s *EmailTemplateService) InsertOne(ctx context.Context, template models.EmailTemplate) (models.EmailTemplate, error) {
	template.Variables = mailer.ExtractVariables(template.HTMLContent)
	return s.BaseServiceMongoImpl.InsertOne(ctx, template)
}

// UpdateContent cập nhật nội dung template và trích lại danh sách biến
func (s *EmailTemplateService) UpdateContent(ctx context.Context, id primitive.ObjectID, template models.EmailTemplate) (models.EmailTemplate, error) {
	set := bson.M{
		"updatedAt": utility.CurrentTimeInMilli(),
	}
	if template.Name != "" {
		set["name"] = template.Name
	}
	if template.Subject != "" {
		set["subject"] = template.Subject
	}
	if template.HTMLContent != "" {
		set["htmlContent"] = template.HTMLContent
		set["variables"] = mailer.ExtractVariables(template.HTMLContent)
	}
	if template.PreviewText != "" {
		set["previewText"] = template.PreviewText
	}
	return s.UpdateById(ctx, id, bson.M{"$set": set})
}
