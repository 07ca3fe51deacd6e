package authz

import "fmt"

// Policy 权限策略
type Policy struct {
	Subject string `json:"subject"`
	Object  string `json:"object"`
	Action  string `json:"action"`
}

// RoleSeed 预置角色定义
type RoleSeed struct {
	Role     string
	Policies []Policy
}

// BuiltinRoleSeeds 系统预置角色矩阵：
// staff 负责订单处理，admin 额外拥有目录、用户与账号管理权限
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: "staff",
			Policies: []Policy{
				{Object: "/api/v1/admin/password", Action: "PUT"},
				{Object: "/api/v1/admin/orders", Action: "GET"},
				{Object: "/api/v1/admin/orders/:id", Action: "GET"},
				{Object: "/api/v1/admin/orders/:id/status", Action: "PUT"},
				{Object: "/api/v1/admin/orders/:id/payment", Action: "PUT"},
				{Object: "/api/v1/admin/orders/:id/notes", Action: "PUT"},
				{Object: "/api/v1/admin/dashboard/stats", Action: "GET"},
				{Object: "/api/v1/admin/products", Action: "GET"},
				{Object: "/api/v1/admin/products/:id", Action: "GET"},
				{Object: "/api/v1/admin/categories", Action: "GET"},
			},
		},
		{
			Role: "admin",
			Policies: []Policy{
				{Object: "/api/v1/admin/*", Action: "*"},
			},
		},
	}
}

// Bootstrap 写入预置角色策略（幂等）
func Bootstrap(svc *Service) error {
	if svc == nil || svc.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}
	for _, seed := range BuiltinRoleSeeds() {
		subject := SubjectForRole(seed.Role)
		for _, policy := range seed.Policies {
			if _, err := svc.enforcer.AddPolicy(subject, policy.Object, policy.Action); err != nil {
				return fmt.Errorf("seed role policy failed: %w", err)
			}
		}
	}
	return nil
}
