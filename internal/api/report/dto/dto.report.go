// Package dto chứa DTO cho domain Report.
// Report chỉ đọc qua API nên hai input dưới đây chỉ để thỏa generic của
// base handler, không có route ghi nào dùng tới.
package dto

// ReportCreateInput không dùng: report do hệ thống sinh trong lúc gửi
type ReportCreateInput struct{}

// ReportUpdateInput không dùng: report chỉ chuyển trạng thái qua tracking pixel
type ReportUpdateInput struct{}
