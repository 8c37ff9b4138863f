// Package services - Service cho domain EmailList.
package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basesvc "email_marketing/internal/api/base/service"
	models "email_marketing/internal/api/list/models"
	"email_marketing/internal/common"
	"email_marketing/internal/global"
	"email_marketing/internal/utility"
)

// EmailListService quản lý danh sách người nhận. Mảng emails giữ nguyên
// thứ tự chèn; thứ tự đó chính là thứ tự gửi của batch.
type EmailListService struct {
	*basesvc.BaseServiceMongoImpl[models.EmailList]
}

// NewEmailListService tạo mới EmailListService
func NewEmailListService() (*EmailListService, error) {
	listCollection, exist := global.RegistryCollections.Get(global.MongoCollectionNames.EmailLists)
	if !exist {
		return nil, fmt.Errorf("failed to get email_lists collection: %v", common.ErrNotFound)
	}
	return &EmailListService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.EmailList](listCollection),
	}, nil
}

// AddSubscribers thêm người nhận vào cuối danh sách, cấp _id và timestamps
// cho từng subscriber rồi cập nhật lại totalCount.
func (s *EmailListService) AddSubscribers(ctx context.Context, listID primitive.ObjectID, subs []models.Subscriber) (models.EmailList, error) {
	now := utility.CurrentTimeInMilli()
	for i := range subs {
		if err := utility.ValidateEmail(subs[i].Email); err != nil {
			return models.EmailList{}, err
		}
		if subs[i].ID.IsZero() {
			subs[i].ID = primitive.NewObjectID()
		}
		if subs[i].EmailStatus == "" {
			subs[i].EmailStatus = models.EmailStatusRight
		}
		subs[i].CreatedAt = now
		subs[i].UpdatedAt = now
	}
	update := bson.M{
		"$push": bson.M{"emails": bson.M{"$each": subs}},
		"$inc":  bson.M{"totalCount": len(subs)},
		"$set":  bson.M{"updatedAt": now},
	}
	return s.UpdateById(ctx, listID, update)
}

// RemoveSubscriber gỡ một người nhận khỏi danh sách theo _id nhúng
func (s *EmailListService) RemoveSubscriber(ctx context.Context, listID, subscriberID primitive.ObjectID) (models.EmailList, error) {
	update := bson.M{
		"$pull": bson.M{"emails": bson.M{"_id": subscriberID}},
		"$inc":  bson.M{"totalCount": -1},
		"$set":  bson.M{"updatedAt": utility.CurrentTimeInMilli()},
	}
	return s.UpdateById(ctx, listID, update)
}

// MarkSubscriberSent đánh dấu sended = true cho subscriber vừa gửi thành công.
// Dùng positional update trên phần tử mảng khớp _id nhúng.
func (s *EmailListService) MarkSubscriberSent(ctx context.Context, listID, subscriberID primitive.ObjectID) error {
	filter := bson.M{"_id": listID, "emails._id": subscriberID}
	update := bson.M{"$set": bson.M{
		"emails.$.sended":    true,
		"emails.$.updatedAt": utility.CurrentTimeInMilli(),
	}}
	_, err := s.UpdateOne(ctx, filter, update, nil)
	return err
}

// FindSubscriberByID tìm một subscriber theo _id nhúng trên mọi danh sách.
// Trả về danh sách chứa nó và bản thân subscriber.
func (s *EmailListService) FindSubscriberByID(ctx context.Context, subscriberID primitive.ObjectID) (models.EmailList, models.Subscriber, error) {
	list, err := s.FindOne(ctx, bson.M{"emails._id": subscriberID}, nil)
	if err != nil {
		return models.EmailList{}, models.Subscriber{}, err
	}
	for _, sub := range list.Emails {
		if sub.ID == subscriberID {
			return list, sub, nil
		}
	}
	return models.EmailList{}, models.Subscriber{}, common.ErrNotFound
}
