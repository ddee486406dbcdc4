package api

import "context"

const departmentPrefix = "/ddg/departments"

// Department is a ministry/department record.
type Department struct {
	DepartmentID int64  `json:"department_id"`
	DepartmentNm string `json:"department_nm"`
	IsActive     bool   `json:"is_active"`
}

// DepartmentsClient talks to the /ddg/departments endpoints.
type DepartmentsClient struct {
	c *Client
}

// NewDepartmentsClient returns a DepartmentsClient composing the shared wrapper.
func NewDepartmentsClient(c *Client) *DepartmentsClient {
	return &DepartmentsClient{c: c}
}

// List returns all departments.
func (d *DepartmentsClient) List(ctx context.Context) ([]Department, error) {
	var out []Department
	if err := d.c.Get(ctx, departmentPrefix+"/", &out); err != nil {
		return nil, err
	}
	return out, nil
}
